package datasource

import (
	"encoding/json"
	"io/ioutil"

	"github.com/inburst/prhub/tracking"
)

// LoadLocalCache loads the rows saved by the previous listing so they can be
// shown while a fresh listing is in flight.
// Suppressed errors will cause the cache file to be emptied and rebuilt
// effectively self healing from corrupt or invalid data
func (ds *Datasource) LoadLocalCache() []*PullRequest {
	prs := []*PullRequest{}
	if ds.cacheFilePath == "" {
		tracking.SendMetric("data.loadpullscache.patherror")
		return prs
	}
	data, err := ioutil.ReadFile(ds.cacheFilePath)
	if err != nil {
		tracking.SendMetric("data.loadpullscache.readerror")
		return prs
	}
	err = json.Unmarshal(data, &prs)
	if err != nil {
		tracking.SendMetric("data.loadpullscache.unmarshallerror")
		ds.log().WithError(err).Warn("discarding unreadable pulls cache")
		return []*PullRequest{}
	}

	ds.mutex.Lock()
	if ds.cachedPRs == nil {
		ds.cachedPRs = prs
	}
	ds.mutex.Unlock()
	return prs
}

func (ds *Datasource) saveToFile() {
	if ds.cacheFilePath == "" {
		return
	}
	ds.mutex.RLock()
	file, err := json.MarshalIndent(ds.cachedPRs, "", " ")
	ds.mutex.RUnlock()
	if err != nil {
		ds.log().WithError(err).Warn("encoding pulls cache")
		return
	}
	if err := ioutil.WriteFile(ds.cacheFilePath, file, 0644); err != nil {
		ds.log().WithError(err).Warn("writing pulls cache")
	}
}
