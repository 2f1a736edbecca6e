package bot

import (
	"testing"

	"pgregory.net/rapid"

	"telegram-monopoly-bot/internal/config"
)

// TestAdminCheckProperty verifies that a user is an admin exactly when
// their ID appears in the configured admin list.
func TestAdminCheckProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numAdmins := rapid.IntRange(1, 10).Draw(t, "numAdmins")
		adminIDs := make([]int64, numAdmins)
		adminSet := make(map[int64]bool)
		for i := 0; i < numAdmins; i++ {
			adminIDs[i] = rapid.Int64Range(1, 1000000000).Draw(t, "adminID")
			adminSet[adminIDs[i]] = true
		}

		cfg := &config.Config{
			Admin: config.AdminConfig{IDs: adminIDs},
		}

		userID := rapid.Int64Range(1, 1000000000).Draw(t, "userID")
		if cfg.IsAdmin(userID) != adminSet[userID] {
			t.Fatalf("admin check mismatch: userID=%d, adminIDs=%v", userID, adminIDs)
		}

		// A known admin is always recognized.
		known := adminIDs[rapid.IntRange(0, numAdmins-1).Draw(t, "adminIndex")]
		if !cfg.IsAdmin(known) {
			t.Fatalf("known admin %d not recognized, adminIDs=%v", known, adminIDs)
		}
	})
}

// TestWhitelistProperty verifies that a chat is allowed exactly when its
// ID appears in a non-empty whitelist.
func TestWhitelistProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numChats := rapid.IntRange(1, 10).Draw(t, "numChats")
		chatIDs := make([]int64, numChats)
		chatSet := make(map[int64]bool)
		for i := 0; i < numChats; i++ {
			// Group chat IDs are negative.
			chatIDs[i] = -rapid.Int64Range(1, 1000000000).Draw(t, "chatID")
			chatSet[chatIDs[i]] = true
		}

		cfg := &config.Config{
			Whitelist: config.WhitelistConfig{Chats: chatIDs},
		}

		testChatID := -rapid.Int64Range(1, 1000000000).Draw(t, "testChatID")
		if cfg.IsChatAllowed(testChatID) != chatSet[testChatID] {
			t.Fatalf("whitelist check mismatch: chatID=%d, whitelist=%v", testChatID, chatIDs)
		}
	})
}

// TestEmptyWhitelistAllowsAllChats covers the open-by-default case.
func TestEmptyWhitelistAllowsAllChats(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := &config.Config{
			Whitelist: config.WhitelistConfig{Chats: []int64{}},
		}

		chatID := -rapid.Int64Range(1, 1000000000).Draw(t, "chatID")
		if !cfg.IsChatAllowed(chatID) {
			t.Fatalf("empty whitelist should allow chat %d", chatID)
		}
	})
}
