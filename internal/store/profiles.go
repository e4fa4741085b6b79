package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/apply-assistant/internal/logging"
	"github.com/jonathan/apply-assistant/internal/schemas"
	"github.com/jonathan/apply-assistant/internal/types"
)

// ApplicationHistoryLimit is the number of most recent applications kept.
const ApplicationHistoryLimit = 50

// Profiles implements the profile operations on top of a Store.
// Writes issued through one Profiles value are serialized.
type Profiles struct {
	mu    sync.Mutex
	store Store
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

// Option configures Profiles.
type Option func(*Profiles)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(p *Profiles) { p.log = l }
}

// WithClock sets the clock used to stamp application records.
func WithClock(now func() time.Time) Option {
	return func(p *Profiles) { p.now = now }
}

// WithIDGenerator sets the function that assigns ids to new entries.
func WithIDGenerator(newID func() string) Option {
	return func(p *Profiles) { p.newID = newID }
}

// NewProfiles returns the profile service for s.
func NewProfiles(s Store, opts ...Option) *Profiles {
	p := &Profiles{
		store: s,
		log:   logging.NewNop(),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get returns the stored profile.
func (s *Profiles) Get(ctx context.Context) (*types.Profile, error) {
	return s.store.Get(ctx)
}

// update runs one read-modify-write cycle while holding the write lock.
func (s *Profiles) update(ctx context.Context, fn func(p *types.Profile) error) (*types.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Update(ctx, s.store, fn)
}

// save replaces the whole profile while holding the write lock.
func (s *Profiles) save(ctx context.Context, p *types.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(ctx, p)
}

// Replace validates p and stores it as the whole profile.
func (s *Profiles) Replace(ctx context.Context, p *types.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is required")
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	if err := s.save(ctx, p); err != nil {
		return err
	}
	s.log.Info("profile replaced")
	return nil
}

// UpdatePersonalInfo merges the non-empty fields of info into the stored personal info.
func (s *Profiles) UpdatePersonalInfo(ctx context.Context, info types.PersonalInfo) (types.PersonalInfo, error) {
	p, err := s.update(ctx, func(p *types.Profile) error {
		cur := &p.PersonalInfo
		merge(&cur.FirstName, info.FirstName)
		merge(&cur.LastName, info.LastName)
		merge(&cur.Email, info.Email)
		merge(&cur.Phone, info.Phone)
		merge(&cur.Location, info.Location)
		merge(&cur.Portfolio, info.Portfolio)
		merge(&cur.LinkedIn, info.LinkedIn)
		merge(&cur.Summary, info.Summary)
		return nil
	})
	if err != nil {
		return types.PersonalInfo{}, err
	}
	return p.PersonalInfo, nil
}

func merge(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// AddWorkExperience appends e with a fresh id and returns the id.
func (s *Profiles) AddWorkExperience(ctx context.Context, e types.WorkExperience) (string, error) {
	e.ID = s.newID()
	_, err := s.update(ctx, func(p *types.Profile) error {
		p.WorkExperience = append(p.WorkExperience, e)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.log.Debug("work experience added", logging.String("id", e.ID))
	return e.ID, nil
}

// UpdateWorkExperience replaces the entry with the given id, keeping the id.
func (s *Profiles) UpdateWorkExperience(ctx context.Context, id string, e types.WorkExperience) error {
	e.ID = id
	_, err := s.update(ctx, func(p *types.Profile) error {
		i := indexOf(p.WorkExperience, id, func(w types.WorkExperience) string { return w.ID })
		if i < 0 {
			return &NotFoundError{Kind: "work experience", ID: id}
		}
		p.WorkExperience[i] = e
		return nil
	})
	return err
}

// DeleteWorkExperience removes the entry with the given id.
func (s *Profiles) DeleteWorkExperience(ctx context.Context, id string) error {
	_, err := s.update(ctx, func(p *types.Profile) error {
		var ok bool
		p.WorkExperience, ok = remove(p.WorkExperience, id, func(w types.WorkExperience) string { return w.ID })
		if !ok {
			return &NotFoundError{Kind: "work experience", ID: id}
		}
		return nil
	})
	return err
}

// AddEducation appends e with a fresh id and returns the id.
func (s *Profiles) AddEducation(ctx context.Context, e types.Education) (string, error) {
	e.ID = s.newID()
	_, err := s.update(ctx, func(p *types.Profile) error {
		p.Education = append(p.Education, e)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.log.Debug("education added", logging.String("id", e.ID))
	return e.ID, nil
}

// UpdateEducation replaces the entry with the given id, keeping the id.
func (s *Profiles) UpdateEducation(ctx context.Context, id string, e types.Education) error {
	e.ID = id
	_, err := s.update(ctx, func(p *types.Profile) error {
		i := indexOf(p.Education, id, func(ed types.Education) string { return ed.ID })
		if i < 0 {
			return &NotFoundError{Kind: "education", ID: id}
		}
		p.Education[i] = e
		return nil
	})
	return err
}

// DeleteEducation removes the entry with the given id.
func (s *Profiles) DeleteEducation(ctx context.Context, id string) error {
	_, err := s.update(ctx, func(p *types.Profile) error {
		var ok bool
		p.Education, ok = remove(p.Education, id, func(ed types.Education) string { return ed.ID })
		if !ok {
			return &NotFoundError{Kind: "education", ID: id}
		}
		return nil
	})
	return err
}

// AddProject appends pr with a fresh id and returns the id.
func (s *Profiles) AddProject(ctx context.Context, pr types.Project) (string, error) {
	pr.ID = s.newID()
	_, err := s.update(ctx, func(p *types.Profile) error {
		p.Projects = append(p.Projects, pr)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.log.Debug("project added", logging.String("id", pr.ID))
	return pr.ID, nil
}

// UpdateProject replaces the entry with the given id, keeping the id.
func (s *Profiles) UpdateProject(ctx context.Context, id string, pr types.Project) error {
	pr.ID = id
	_, err := s.update(ctx, func(p *types.Profile) error {
		i := indexOf(p.Projects, id, func(x types.Project) string { return x.ID })
		if i < 0 {
			return &NotFoundError{Kind: "project", ID: id}
		}
		p.Projects[i] = pr
		return nil
	})
	return err
}

// DeleteProject removes the entry with the given id.
func (s *Profiles) DeleteProject(ctx context.Context, id string) error {
	_, err := s.update(ctx, func(p *types.Profile) error {
		var ok bool
		p.Projects, ok = remove(p.Projects, id, func(x types.Project) string { return x.ID })
		if !ok {
			return &NotFoundError{Kind: "project", ID: id}
		}
		return nil
	})
	return err
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func remove[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	out := items[:0]
	found := false
	for _, item := range items {
		if idOf(item) == id {
			found = true
			continue
		}
		out = append(out, item)
	}
	return out, found
}

// UpdateSkills replaces the skill list.
func (s *Profiles) UpdateSkills(ctx context.Context, skills []string) error {
	_, err := s.update(ctx, func(p *types.Profile) error {
		p.Skills = append([]string{}, skills...)
		return nil
	})
	return err
}

// SaveResumeText replaces the free-form resume text.
func (s *Profiles) SaveResumeText(ctx context.Context, text string) error {
	_, err := s.update(ctx, func(p *types.Profile) error {
		p.ResumeText = text
		return nil
	})
	return err
}

// AddApplication prepends rec to the history with a fresh id and timestamp,
// keeping only the most recent ApplicationHistoryLimit entries. The job
// description is dropped when the saveJobDescriptions setting is off.
func (s *Profiles) AddApplication(ctx context.Context, rec types.ApplicationRecord) (types.ApplicationRecord, error) {
	rec.ID = s.newID()
	rec.Timestamp = s.now().UTC().Format(time.RFC3339)

	_, err := s.update(ctx, func(p *types.Profile) error {
		if !p.Settings.SaveJobDescriptions {
			rec.JobDescription = ""
		}
		history := make([]types.ApplicationRecord, 0, len(p.ApplicationHistory)+1)
		history = append(history, rec)
		history = append(history, p.ApplicationHistory...)
		if len(history) > ApplicationHistoryLimit {
			history = history[:ApplicationHistoryLimit]
		}
		p.ApplicationHistory = history
		return nil
	})
	if err != nil {
		return types.ApplicationRecord{}, err
	}
	s.log.Info("application recorded",
		logging.String("id", rec.ID),
		logging.String("source", rec.Source),
		logging.String("url", rec.URL))
	return rec, nil
}

// ClearHistory empties the application history.
func (s *Profiles) ClearHistory(ctx context.Context) error {
	_, err := s.update(ctx, func(p *types.Profile) error {
		p.ApplicationHistory = []types.ApplicationRecord{}
		return nil
	})
	if err == nil {
		s.log.Info("application history cleared")
	}
	return err
}

// SettingsPatch carries the settings to change; nil fields are left as they are.
type SettingsPatch struct {
	AutoExtract         *bool `json:"autoExtract,omitempty"`
	ShowSuggestions     *bool `json:"showSuggestions,omitempty"`
	SaveJobDescriptions *bool `json:"saveJobDescriptions,omitempty"`
}

// UpdateSettings applies patch and returns the resulting settings.
func (s *Profiles) UpdateSettings(ctx context.Context, patch SettingsPatch) (types.Settings, error) {
	p, err := s.update(ctx, func(p *types.Profile) error {
		if patch.AutoExtract != nil {
			p.Settings.AutoExtract = *patch.AutoExtract
		}
		if patch.ShowSuggestions != nil {
			p.Settings.ShowSuggestions = *patch.ShowSuggestions
		}
		if patch.SaveJobDescriptions != nil {
			p.Settings.SaveJobDescriptions = *patch.SaveJobDescriptions
		}
		return nil
	})
	if err != nil {
		return types.Settings{}, err
	}
	return p.Settings, nil
}

// Export returns the profile as indented JSON.
func (s *Profiles) Export(ctx context.Context) ([]byte, error) {
	p, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return data, nil
}

// Import validates data against the profile schema and stores it as the whole profile.
// The stored profile is unchanged when validation fails.
func (s *Profiles) Import(ctx context.Context, data []byte) (*types.Profile, error) {
	if err := schemas.ValidateProfile(data); err != nil {
		return nil, err
	}

	p := types.NewProfile()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	p.Normalize()

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("profile imported",
		logging.Int("experience", len(p.WorkExperience)),
		logging.Int("skills", len(p.Skills)))
	return p, nil
}

// Clear resets the profile to defaults.
func (s *Profiles) Clear(ctx context.Context) error {
	if err := s.save(ctx, types.NewProfile()); err != nil {
		return err
	}
	s.log.Info("profile cleared")
	return nil
}
