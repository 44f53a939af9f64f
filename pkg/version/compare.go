package version

import (
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"
)

// Direction describes how a version moved between two runs.
type Direction int

const (
	// Unknown means the versions could not be ordered.
	Unknown Direction = iota
	// Same means the versions compare equal.
	Same
	// Upgrade means the new version is newer.
	Upgrade
	// Downgrade means the new version is older.
	Downgrade
)

func (d Direction) String() string {
	switch d {
	case Same:
		return "same"
	case Upgrade:
		return "upgrade"
	case Downgrade:
		return "downgrade"
	}
	return "unknown"
}

// Compare reports how the version moved from "from" to "to".
//
// Normalized tokens are always valid PEP 440 release segments, so that
// ordering is tried first. Baselines written by other tools may hold
// distribution versions like "2.39-1", which fall back to Debian ordering.
func Compare(from, to string) Direction {
	if from == to {
		return Same
	}
	if a, err := pep440.Parse(from); err == nil {
		if b, err := pep440.Parse(to); err == nil {
			return direction(b.Compare(a))
		}
	}
	if a, err := debversion.NewVersion(from); err == nil {
		if b, err := debversion.NewVersion(to); err == nil {
			return direction(b.Compare(a))
		}
	}
	return Unknown
}

func direction(cmp int) Direction {
	switch {
	case cmp > 0:
		return Upgrade
	case cmp < 0:
		return Downgrade
	}
	return Same
}
