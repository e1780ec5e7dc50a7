package config

import (
	"log"
	"strconv"
)

// Policy holds the clinical and economic constants of the dispatch session.
// These are policy decisions, not algorithmic constants, so they are read
// from the environment with the reference defaults as fallback.
type Policy struct {
	HalfLifeHours     float64 // isotope half-life (Tc-99m: 6h)
	OptimalThreshold  float64 // potency >= this: cardiac/oncology use
	FutilityThreshold float64 // potency below this: cancel the delivery
	SavedThreshold    float64 // potency above this counts as a saved dose
	DoseValue         float64 // manufacturing + logistics cost per dose
	SnapToleranceDeg2 float64 // max squared degree distance for incident snapping
	DeltaNoiseFloor   float64 // baseline deltas smaller than this are suppressed
	OptimizerURL      string  // external route optimizer base URL
	HospitalFeedURL   string  // hospital reference feed URL
}

// Current is the globally accessible session policy, set by InitPolicy.
var Current Policy

// InitPolicy loads the policy into the global handle.
func InitPolicy() {
	Current = LoadPolicy()
}

// LoadPolicy reads the session policy from the environment.
// InitDB has already run godotenv.Load by the time this is called.
func LoadPolicy() Policy {
	return Policy{
		HalfLifeHours:     getEnvFloat("ISOTOPE_HALF_LIFE_HOURS", 6.0),
		OptimalThreshold:  getEnvFloat("OPTIMAL_THRESHOLD", 70.0),
		FutilityThreshold: getEnvFloat("FUTILITY_THRESHOLD", 35.0),
		SavedThreshold:    getEnvFloat("SAVED_THRESHOLD", 60.0),
		DoseValue:         getEnvFloat("DOSE_VALUE", 1500.0),
		SnapToleranceDeg2: getEnvFloat("SNAP_TOLERANCE_DEG2", 3e-5),
		DeltaNoiseFloor:   getEnvFloat("DELTA_NOISE_FLOOR", 0.1),
		OptimizerURL:      getEnv("OPTIMIZER_URL", "http://localhost:8000"),
		HospitalFeedURL:   getEnv("HOSPITAL_FEED_URL", "http://localhost:8000/hospitals"),
	}
}

func getEnvFloat(key string, defaultValue float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("invalid value for %s: %q, using default %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
