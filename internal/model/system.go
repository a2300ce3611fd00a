package model

// Feature names reported by GET /api/system/version.
const (
	FeatureFIFOMatching       = "fifo_matching"
	FeatureIntegrityGate      = "integrity_gate"
	FeaturePriceCache         = "price_cache"
	FeaturePortfolioBreakdown = "portfolio_breakdown"
	FeatureWallet             = "wallet"
)

// VersionInfo describes the running build and the state of its schema.
// DbVersion is the applied goose migration version; MigrationMessage is
// set only while MigrationNeeded is true.
type VersionInfo struct {
	AppVersion       string          `json:"app_version"`
	DbVersion        string          `json:"db_version"`
	Features         map[string]bool `json:"features"`
	MigrationNeeded  bool            `json:"migration_needed"`
	MigrationMessage *string         `json:"migration_message,omitempty"`
}

// Features lists every feature name, all enabled.
func Features() map[string]bool {
	return map[string]bool{
		FeatureFIFOMatching:       true,
		FeatureIntegrityGate:      true,
		FeaturePriceCache:         true,
		FeaturePortfolioBreakdown: true,
		FeatureWallet:             true,
	}
}
