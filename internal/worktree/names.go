package worktree

import (
	"strconv"
	"time"
)

// CityName picks an unused city name for a new worktree. When every
// city is taken, a numeric suffix is appended to a picked base name.
func CityName(existing map[string]bool) string {
	return cityNameWithSeed(existing, randomSeed())
}

// cityNameWithSeed is the deterministic core of CityName; the same seed
// and existing set always produce the same name.
func cityNameWithSeed(existing map[string]bool, seed uint64) string {
	var available []string
	for _, name := range cityNames {
		if !existing[name] {
			available = append(available, name)
		}
	}

	state := seed
	if len(available) > 0 {
		return available[nextIndex(&state, len(available))]
	}

	base := cityNames[nextIndex(&state, len(cityNames))]
	for suffix := 2; ; suffix++ {
		candidate := base + "-" + strconv.Itoa(suffix)
		if !existing[candidate] {
			return candidate
		}
	}
}

func randomSeed() uint64 {
	nanos := uint64(time.Now().UnixNano())
	if nanos == 0 {
		return 0x9e3779b97f4a7c15
	}
	return nanos
}

// nextIndex advances an xorshift64 state and maps it onto [0, n).
func nextIndex(state *uint64, n int) int {
	if n == 0 {
		return 0
	}
	v := *state
	if v == 0 {
		v = 0x9e3779b97f4a7c15
	}
	v ^= v << 13
	v ^= v >> 7
	v ^= v << 17
	*state = v
	return int(v % uint64(n))
}
