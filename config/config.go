package config

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/imdario/mergo"
	"github.com/inburst/prhub/utils"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const DefaultAccessToken = "personal access token with code read permission"
const DefaultUsername = "Your username or email"

const (
	ProviderAzure  = "azure"
	ProviderGithub = "github"
)

const (
	AvatarsImage    = "image"
	AvatarsInitials = "initials"
)

const envPrefix = "PRHUB"

type BreakpointConfig struct {
	Medium int `yaml:"Medium" mapstructure:"Medium"`
	Large  int `yaml:"Large" mapstructure:"Large"`
}

type Config struct {
	ConfigVersion int `yaml:"ConfigVersion" mapstructure:"ConfigVersion"`

	Provider         string           `yaml:"Provider" mapstructure:"Provider"`
	OrganizationURL  string           `yaml:"OrganizationURL" mapstructure:"OrganizationURL"`
	Project          string           `yaml:"Project" mapstructure:"Project"`
	AccessToken      string           `yaml:"AccessToken" mapstructure:"AccessToken"`
	Organization     string           `yaml:"Organization" mapstructure:"Organization"`
	Repositories     []string         `yaml:"Repositories" mapstructure:"Repositories"`
	Username         string           `yaml:"Username" mapstructure:"Username"`
	Avatars          string           `yaml:"Avatars" mapstructure:"Avatars"`
	Breakpoints      BreakpointConfig `yaml:"Breakpoints" mapstructure:"Breakpoints"`
	RefreshSchedule  string           `yaml:"RefreshSchedule" mapstructure:"RefreshSchedule"`
	ListenAddress    string           `yaml:"ListenAddress" mapstructure:"ListenAddress"`
	CommentCacheSize int              `yaml:"CommentCacheSize" mapstructure:"CommentCacheSize"`
	TrackingToken    string           `yaml:"TrackingToken" mapstructure:"TrackingToken"`
}

// Default returns the values used for any field left empty in conf.yaml.
func Default() Config {
	return Config{
		ConfigVersion:    1,
		Provider:         ProviderAzure,
		Avatars:          AvatarsImage,
		Breakpoints:      BreakpointConfig{Medium: 100, Large: 140},
		RefreshSchedule:  "@every 5m",
		ListenAddress:    ":8080",
		CommentCacheSize: 512,
	}
}

// LoadConfig reads conf.yaml from path, or from the application folder when
// path is empty. PRHUB_ prefixed environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		if err := checkAndCreateConfigFile(); err != nil {
			return nil, err
		}
		p, err := GetConfigFilePath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := mergo.Merge(c, Default()); err != nil {
		return nil, errors.Wrap(err, "apply config defaults")
	}

	// detect default configuration
	if c.Username == DefaultUsername || c.AccessToken == DefaultAccessToken || c.AccessToken == "" {
		return nil, fmt.Errorf("Please set up configuration at %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderAzure:
		if c.OrganizationURL == "" || c.Project == "" {
			return errors.New("azure provider requires OrganizationURL and Project")
		}
	case ProviderGithub:
		if c.Organization == "" && len(c.Repositories) == 0 {
			return errors.New("github provider requires Organization or Repositories")
		}
		for _, r := range c.Repositories {
			if len(strings.Split(r, "/")) != 2 {
				return errors.Errorf("repository %q must be written as owner/name", r)
			}
		}
	default:
		return errors.Errorf("unknown provider %q", c.Provider)
	}

	if !utils.Contains([]string{AvatarsImage, AvatarsInitials}, c.Avatars) {
		return errors.Errorf("Avatars must be %q or %q", AvatarsImage, AvatarsInitials)
	}
	if c.Breakpoints.Medium >= c.Breakpoints.Large {
		return errors.New("Breakpoints.Medium must be smaller than Breakpoints.Large")
	}
	return nil
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"Provider",
		"OrganizationURL",
		"Project",
		"AccessToken",
		"Organization",
		"Username",
		"Avatars",
		"Breakpoints.Medium",
		"Breakpoints.Large",
		"RefreshSchedule",
		"ListenAddress",
		"CommentCacheSize",
		"TrackingToken",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

func checkAndCreateConfigFile() error {
	if err := PrepApplicationCacheFolder(); err != nil {
		return err
	}

	confPath, err := GetConfigFilePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(confPath); os.IsNotExist(err) {
		return WriteDefaultConfig(confPath)
	}
	return nil
}

// WriteDefaultConfig writes a placeholder configuration the user has to edit.
func WriteDefaultConfig(confPath string) error {
	blankConfig := Default()
	blankConfig.AccessToken = DefaultAccessToken
	blankConfig.Username = DefaultUsername
	blankConfig.OrganizationURL = "https://dev.azure.com/<organization>/"
	blankConfig.Project = "<project>"

	var b bytes.Buffer
	yamlEncoder := yaml.NewEncoder(&b)
	yamlEncoder.SetIndent(2)
	if err := yamlEncoder.Encode(&blankConfig); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(confPath), 0755); err != nil {
		return err
	}
	return ioutil.WriteFile(confPath, b.Bytes(), 0644)
}
