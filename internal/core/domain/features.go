package domain

// FeatureFlags gates the dashboard's optional modules. Stored as a single
// settings document; all features default to enabled.
type FeatureFlags struct {
	AIAssistant   bool `json:"ai_assistant" bson:"ai_assistant"`
	Analytics     bool `json:"analytics" bson:"analytics"`
	BugTracker    bool `json:"bug_tracker" bson:"bug_tracker"`
	Messaging     bool `json:"messaging" bson:"messaging"`
	Subscriptions bool `json:"subscriptions" bson:"subscriptions"`
}

// DefaultFeatureFlags returns the flag set used before an admin has saved any.
func DefaultFeatureFlags() FeatureFlags {
	return FeatureFlags{
		AIAssistant:   true,
		Analytics:     true,
		BugTracker:    true,
		Messaging:     true,
		Subscriptions: true,
	}
}
