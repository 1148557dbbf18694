package config

import (
	"fmt"
	"os"
)

const appFolderName = ".prhub"

func GetApplicationFolder() (string, error) {
	homeDirName, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", homeDirName, appFolderName), nil
}

func PrepApplicationCacheFolder() error {
	dirPath, err := GetApplicationFolder()
	if err != nil {
		return err
	}
	return os.MkdirAll(dirPath, 0755)
}

func GetConfigFilePath() (string, error) {
	return appFile("conf.yaml")
}

func GetLogFilePath() (string, error) {
	return appFile("prhub.log")
}

func GetStatsFilePath() (string, error) {
	return appFile("stats.yaml")
}

func GetPullsCacheFilePath() (string, error) {
	return appFile("pulls.json")
}

func appFile(name string) (string, error) {
	dirPath, err := GetApplicationFolder()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", dirPath, name), nil
}
