package cronJobs

import (
	"context"
	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"
	"time"
)

const pingTimeout = 5 * time.Second

// PingDatabase checks that the pool can still reach the database
func PingDatabase(db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logrus.Errorf("PingDatabase: database unreachable: %v", err)
		return err
	}
	stats := db.Stats()
	logrus.Debugf("PingDatabase: open=%d inUse=%d idle=%d waitCount=%d",
		stats.OpenConnections, stats.InUse, stats.Idle, stats.WaitCount)
	return nil
}

// InitiateKeepAlive schedules PingDatabase on spec. The caller stops the
// returned cron when shutting down.
func InitiateKeepAlive(db *sqlx.DB, spec string) (*cron.Cron, error) {
	logrus.Infof("initiating database keepalive job %q", spec)
	keepAlive := cron.NewWithLocation(time.Local)
	err := keepAlive.AddFunc(spec, func() {
		_ = PingDatabase(db)
	})
	if err != nil {
		logrus.Errorf("keepalive job initiation failed %v", err)
		return nil, err
	}
	keepAlive.Start()
	return keepAlive, nil
}
