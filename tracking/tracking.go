package tracking

import (
	"sync"

	mixpanel "github.com/ajones/go-mixpanel"
	"github.com/inburst/prhub/logger"
)

var (
	token string
	mutex sync.RWMutex
)

// Init enables usage events. Nothing is sent while the token is empty.
func Init(mixpanelToken string) {
	mutex.Lock()
	token = mixpanelToken
	mutex.Unlock()
}

func Enabled() bool {
	mutex.RLock()
	defer mutex.RUnlock()
	return token != ""
}

func SendMetric(metricName string) {
	mutex.RLock()
	t := token
	mutex.RUnlock()
	if t == "" {
		return
	}

	mp := mixpanel.NewMixpanel(t)
	err := mp.Track(mixpanel.NewEvent(metricName))
	if err != nil {
		logger.Shared().Printf("%s", err)
	}
}
