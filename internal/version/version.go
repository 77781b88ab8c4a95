// Package version parses the dotted, semantic-version-like strings used for
// dependency pins, NDK versions and release tags.
package version

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var versionRegex = regexp.MustCompile(`^(\d+(?:\.\d+)*)(?:-([0-9A-Za-z][0-9A-Za-z.-]*))?$`)

// Version is a parsed version string. This type is immutable.
type Version struct {
	Parts      []int64
	PreRelease string
}

// Parse parses digits separated by dots with an optional -prerelease suffix,
// e.g. "21.0.1", "27.0.12077973", "2.0.0-beta.1".
func Parse(s string) (Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, errors.New("invalid version format: " + strconv.Quote(s))
	}

	fields := strings.Split(matches[1], ".")
	v := Version{Parts: make([]int64, 0, len(fields)), PreRelease: matches[2]}
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return Version{}, errors.New("invalid version component: " + f)
		}
		v.Parts = append(v.Parts, n)
	}
	return v, nil
}

// IsWellFormed reports whether s parses as a version.
func IsWellFormed(s string) bool {
	return versionRegex.MatchString(s)
}

// ParseTag parses a release tag with an optional "v" or "V" prefix.
func ParseTag(tag string) (Version, bool) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(tag, "v"), "V")
	v, err := Parse(trimmed)
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// Compare returns -1, 0 or 1. Missing trailing components count as zero and
// a pre-release sorts before the same version without one.
func (v Version) Compare(other Version) int {
	n := max(len(v.Parts), len(other.Parts))
	for i := range n {
		a, b := part(v.Parts, i), part(other.Parts, i)
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	switch {
	case v.PreRelease == other.PreRelease:
		return 0
	case v.PreRelease == "":
		return 1
	case other.PreRelease == "":
		return -1
	case v.PreRelease < other.PreRelease:
		return -1
	default:
		return 1
	}
}

func part(parts []int64, i int) int64 {
	if i < len(parts) {
		return parts[i]
	}
	return 0
}

// String returns the canonical form of the version.
func (v Version) String() string {
	var sb strings.Builder
	for i, p := range v.Parts {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatInt(p, 10))
	}
	if v.PreRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.PreRelease)
	}
	return sb.String()
}

// Coordinate is a Maven dependency coordinate group:artifact:version.
type Coordinate struct {
	Group    string
	Artifact string
	Version  string
}

// ParseCoordinate splits a group:artifact[:version] coordinate. The version
// is not checked for well-formedness; an absent version is returned empty.
func ParseCoordinate(s string) (Coordinate, error) {
	fields := strings.Split(s, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return Coordinate{}, errors.New("invalid dependency coordinate: " + strconv.Quote(s))
	}
	for _, f := range fields {
		if f == "" {
			return Coordinate{}, errors.New("invalid dependency coordinate: " + strconv.Quote(s))
		}
	}
	c := Coordinate{Group: fields[0], Artifact: fields[1]}
	if len(fields) == 3 {
		c.Version = fields[2]
	}
	return c, nil
}
