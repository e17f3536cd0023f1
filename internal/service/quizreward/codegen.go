package quizreward

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// maxCodeAttempts bounds the collision retry loop. Generation must never
// block indefinitely.
const maxCodeAttempts = 10

// CollisionChecker reports whether a candidate coupon code already exists.
// The coupon registry supplies the real implementation; tests inject fakes.
type CollisionChecker func(code string) (bool, error)

// Generator mints human-readable coupon codes of the form
// PREFIX-xxxxxxttrr (6 random chars, 2 timestamp digits, 2 random digits),
// retrying on collision up to maxCodeAttempts before falling back to a
// deterministic code derived from the user id and the clock.
type Generator struct {
	exists CollisionChecker
	now    func() time.Time
	intn   func(n int) int
	newID  func() string
}

// NewGenerator creates a generator backed by the real clock and randomness.
func NewGenerator(exists CollisionChecker) *Generator {
	return &Generator{
		exists: exists,
		now:    time.Now,
		intn:   rand.Intn,
		newID:  uuid.NewString,
	}
}

// NewGeneratorDeterministic is test-only: it pins the clock, the random
// source and the id source so collision and failsafe paths are reproducible.
func NewGeneratorDeterministic(exists CollisionChecker, now func() time.Time, intn func(n int) int, newID func() string) *Generator {
	return &Generator{exists: exists, now: now, intn: intn, newID: newID}
}

// Generate returns a code unique per the collision checker, or the failsafe
// code when all attempts collide. The failsafe is NOT re-checked for
// uniqueness; collisions on it are considered practically impossible and
// this is an accepted weak guarantee.
func (g *Generator) Generate(prefix string, userID uint) (string, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code := g.candidate(prefix)

		exists, err := g.exists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check coupon code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
		log.Printf("[CouponCodeGen] Collision on %q, attempt %d/%d", code, attempt, maxCodeAttempts)
	}

	code := g.failsafe(prefix, userID)
	log.Printf("[CouponCodeGen] All %d attempts collided, using failsafe code %q", maxCodeAttempts, code)
	return code, nil
}

// candidate builds PREFIX-xxxxxxttrr: 6 chars of a fresh UUID, the first 2
// of the last 4 digits of the epoch-millis timestamp, and 2 random digits.
func (g *Generator) candidate(prefix string) string {
	uniqueID := g.newID()
	if len(uniqueID) > 6 {
		uniqueID = uniqueID[:6]
	}

	ts := strconv.FormatInt(g.now().UnixMilli(), 10)
	tail := ts[len(ts)-4:]

	random := fmt.Sprintf("%03d", g.intn(1000))

	return fmt.Sprintf("%s-%s%s%s", prefix, uniqueID, tail[:2], random[:2])
}

// failsafe builds PREFIX-uuuutttttttt from the last 4 characters of the user
// id and the last 8 digits of the epoch-millis timestamp.
func (g *Generator) failsafe(prefix string, userID uint) string {
	uid := strconv.FormatUint(uint64(userID), 10)
	if len(uid) > 4 {
		uid = uid[len(uid)-4:]
	}

	ts := strconv.FormatInt(g.now().UnixMilli(), 10)
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}

	return fmt.Sprintf("%s-%s%s", prefix, uid, ts)
}
