package services

import (
	"fmt"
	"testing"

	"merchline/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database per test, migrated to the current
// schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db.Migrate(gdb)
	return gdb
}

// fakeMailer records enqueued notifications for assertions.
type fakeMailer struct {
	orderConfirmations []uint
	adminNotifications []uint
	welcomeUserIDs     []uint
	welcomePasswords   []string
}

func (m *fakeMailer) OrderConfirmation(orderID uint) {
	m.orderConfirmations = append(m.orderConfirmations, orderID)
}

func (m *fakeMailer) AdminNotification(orderID uint) {
	m.adminNotifications = append(m.adminNotifications, orderID)
}

func (m *fakeMailer) WelcomeClient(userID uint, password string) {
	m.welcomeUserIDs = append(m.welcomeUserIDs, userID)
	m.welcomePasswords = append(m.welcomePasswords, password)
}
