package tz

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Default is the campus time zone used when none is configured.
const Default = "Europe/Paris"

// Load resolves an IANA zone name, defaulting to Europe/Paris.
func Load(name string) (*time.Location, error) {
	if name == "" {
		name = Default
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %s: %w", name, err)
	}
	return loc, nil
}
