package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"preparedhub-api/repositories"
)

// AlertExpiryJob periodically deactivates alerts whose expiry time has
// passed, so stale warnings drop out of every user's feed without a
// request having to clean them up.
type AlertExpiryJob struct {
	alertRepo *repositories.AlertRepository
	ticker    *time.Ticker
	done      chan bool
}

// NewAlertExpiryJob creates a new alert expiry sweep
func NewAlertExpiryJob(db *gorm.DB, interval time.Duration) *AlertExpiryJob {
	return &AlertExpiryJob{
		alertRepo: repositories.NewAlertRepository(db),
		ticker:    time.NewTicker(interval),
		done:      make(chan bool),
	}
}

// Start begins the sweep
func (j *AlertExpiryJob) Start() {
	fmt.Println("Alert expiry job started")

	go func() {
		// Run immediately on start
		j.sweep()

		for {
			select {
			case <-j.ticker.C:
				j.sweep()
			case <-j.done:
				fmt.Println("Alert expiry job stopped")
				return
			}
		}
	}()
}

// Stop stops the sweep
func (j *AlertExpiryJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *AlertExpiryJob) sweep() {
	expired, err := j.alertRepo.DeactivateExpired(time.Now())
	if err != nil {
		fmt.Printf("Error during alert expiry sweep: %v\n", err)
		return
	}

	if expired > 0 {
		fmt.Printf("Alert expiry sweep deactivated %d alert(s)\n", expired)
	}
}
