package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Deceleration is the policy deciding how many pages a released drag
// advances. The zero value is [Automatic].
type Deceleration struct {
	fixed    bool
	distance int
}

// Automatic lets the release velocity bias rounding toward the direction of
// motion.
func Automatic() Deceleration {
	return Deceleration{}
}

// Fixed advances exactly d pages for any fast release. Negative distances are
// treated as zero.
func Fixed(d int) Deceleration {
	return Deceleration{fixed: true, distance: max(d, 0)}
}

// IsAutomatic reports whether d is the automatic policy.
func (d Deceleration) IsAutomatic() bool {
	return !d.fixed
}

// Distance returns the page count of a fixed policy, or zero.
func (d Deceleration) Distance() int {
	return d.distance
}

func (d Deceleration) String() string {
	if !d.fixed {
		return "automatic"
	}
	return fmt.Sprintf("fixed(%d)", d.distance)
}

// ParseDeceleration accepts "automatic" (or "auto", or an empty string),
// "fixed(N)", "fixed:N" or a bare page count N.
func ParseDeceleration(s string) (Deceleration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "auto", "automatic":
		return Automatic(), nil
	}

	num := s
	if rest, ok := strings.CutPrefix(s, "fixed"); ok {
		rest = strings.TrimPrefix(rest, ":")
		rest = strings.TrimPrefix(rest, "(")
		num = strings.TrimSuffix(rest, ")")
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || n < 0 {
		return Automatic(), fmt.Errorf("invalid deceleration %q", s)
	}
	return Fixed(n), nil
}
