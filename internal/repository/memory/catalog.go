package memory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"gopkg.in/yaml.v3"
)

type Catalog struct {
	mu     sync.RWMutex
	tutors map[string]domain.Tutor
}

func NewCatalog(tutors ...domain.Tutor) *Catalog {
	c := &Catalog{tutors: make(map[string]domain.Tutor, len(tutors))}
	for _, t := range tutors {
		c.tutors[t.ID] = t
	}
	return c
}

type seedFile struct {
	Tutors []domain.Tutor `yaml:"tutors"`
}

// LoadCatalog reads a YAML tutor list of the form `tutors: [{id, name, subjects, hourly_rate, ...}]`.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tutor seed: %w", err)
	}

	var seed seedFile
	if err = yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse tutor seed: %w", err)
	}

	for _, t := range seed.Tutors {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: tutor %q has no id", domain.ErrInvalidArgument, t.Name)
		}
		if t.HourlyRate.IsNegative() {
			return nil, fmt.Errorf("%w: tutor %s has a negative hourly rate", domain.ErrInvalidArgument, t.ID)
		}
	}

	return NewCatalog(seed.Tutors...), nil
}

func (c *Catalog) GetTutor(ctx context.Context, id string) (*domain.Tutor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tutors[id]
	if !ok {
		return nil, domain.ErrTutorNotFound
	}
	return cloneTutor(&t), nil
}

func (c *Catalog) ListTutors(ctx context.Context) ([]*domain.Tutor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]*domain.Tutor, 0, len(c.tutors))
	for _, t := range c.tutors {
		res = append(res, cloneTutor(&t))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

// Put replaces a catalog entry. The catalog is read-only for the booking flow;
// this exists for seeding and for rate changes in tests.
func (c *Catalog) Put(t domain.Tutor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tutors[t.ID] = t
}

func cloneTutor(t *domain.Tutor) *domain.Tutor {
	c := *t
	c.Subjects = append([]string(nil), t.Subjects...)
	return &c
}
