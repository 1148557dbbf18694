package stats

import (
	"bytes"
	"io/ioutil"
	"os"
	"sync"

	"github.com/inburst/prhub/config"
	"github.com/inburst/prhub/datasource"
	"github.com/inburst/prhub/logger"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Stats struct {
	StatsVersion int `yaml:"StatsVersion"`

	LifetimePROpens  int            `yaml:"LifetimePROpens"`
	PROpensPerAuthor map[string]int `yaml:"PROpensPerAuthor"`

	path  string
	mutex sync.Mutex
}

func LoadStats() (*Stats, error) {
	path, err := config.GetStatsFilePath()
	if err != nil {
		return nil, err
	}
	return LoadStatsFrom(path)
}

// LoadStatsFrom reads the stats at path, creating the file when missing.
// Unreadable stats start over from zero.
func LoadStatsFrom(path string) (*Stats, error) {
	err := checkAndCreateStatsFile(path)
	if err != nil {
		return nil, err
	}

	s := &Stats{}
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		logger.Shared().WithError(err).Warn("reading stats")
	}
	err = yaml.Unmarshal(yamlFile, s)
	if err != nil {
		logger.Shared().WithError(err).Warn("discarding unreadable stats")
		s = &Stats{StatsVersion: 1}
	}
	if s.PROpensPerAuthor == nil {
		s.PROpensPerAuthor = map[string]int{}
	}
	s.path = path

	logger.Shared().Debugf("loaded stats: %d opens", s.LifetimePROpens)
	return s, nil
}

// OnViewedPR counts pr as opened and saves the stats.
func (s *Stats) OnViewedPR(pr *datasource.PullRequest) error {
	s.mutex.Lock()
	s.LifetimePROpens++
	author := pr.CreatedBy.UniqueName
	if author == "" {
		author = pr.CreatedBy.DisplayName
	}
	s.PROpensPerAuthor[author]++
	s.mutex.Unlock()

	return s.Save()
}

func (s *Stats) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.path == "" {
		return errors.New("stats have no file")
	}
	return writeStats(s.path, s)
}

func writeStats(path string, s *Stats) error {
	var b bytes.Buffer
	yamlEncoder := yaml.NewEncoder(&b)
	yamlEncoder.SetIndent(2)
	if err := yamlEncoder.Encode(s); err != nil {
		return errors.Wrap(err, "encoding stats")
	}
	return errors.Wrap(ioutil.WriteFile(path, b.Bytes(), 0644), "writing stats")
}

func checkAndCreateStatsFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// some default values
		blankStats := &Stats{
			StatsVersion:     1,
			PROpensPerAuthor: map[string]int{},
		}
		return writeStats(path, blankStats)
	}
	return nil
}
