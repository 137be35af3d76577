package usecase

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"career-compass/internal/domain/analysis"
	"career-compass/internal/domain/artifact"
	"career-compass/internal/domain/job"
	"career-compass/internal/domain/market"
	"career-compass/internal/domain/skill"
	"career-compass/internal/domain/user"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

func almostEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// memCache is an in-memory stand-in for the redis adapter.
type memCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}

func (c *memCache) InvalidateUserScope(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, userID)
	for key := range c.data {
		if strings.Contains(key, userID) {
			delete(c.data, key)
		}
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type mockUserRepo struct {
	users map[uuid.UUID]user.User
}

func newMockUserRepo(users ...user.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uuid.UUID]user.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) Update(_ context.Context, u user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) SaveResume(_ context.Context, id uuid.UUID, text, path string) error {
	u, ok := m.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.ResumeText, u.ResumePath = text, path
	m.users[id] = u
	return nil
}

type mockSkillRepo struct {
	records   map[uuid.UUID]map[string]skill.Record
	findCalls int
	findErr   error
}

func newMockSkillRepo(seed ...skill.Record) *mockSkillRepo {
	m := &mockSkillRepo{records: make(map[uuid.UUID]map[string]skill.Record)}
	for _, rec := range seed {
		m.put(rec)
	}
	return m
}

func (m *mockSkillRepo) put(rec skill.Record) {
	if m.records[rec.UserID] == nil {
		m.records[rec.UserID] = make(map[string]skill.Record)
	}
	m.records[rec.UserID][rec.Name] = rec
}

func (m *mockSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]skill.Record, error) {
	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make([]skill.Record, 0, len(m.records[userID]))
	for _, rec := range m.records[userID] {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockSkillRepo) FindByUserAndName(_ context.Context, userID uuid.UUID, name string) (skill.Record, error) {
	rec, ok := m.records[userID][name]
	if !ok {
		return skill.Record{}, repository.ErrUserSkillNotFound
	}
	return rec, nil
}

func (m *mockSkillRepo) Upsert(_ context.Context, rec skill.Record) (skill.Record, error) {
	m.put(rec)
	return rec, nil
}

func (m *mockSkillRepo) UpsertIfHigher(_ context.Context, rec skill.Record) (bool, error) {
	existing, ok := m.records[rec.UserID][rec.Name]
	if ok && existing.Proficiency >= rec.Proficiency {
		return false, nil
	}
	m.put(rec)
	return true, nil
}

func (m *mockSkillRepo) ReplaceForUser(_ context.Context, userID uuid.UUID, recs []skill.Record) error {
	byName := make(map[string]skill.Record, len(recs))
	for _, rec := range recs {
		byName[rec.Name] = rec
	}
	m.records[userID] = byName
	return nil
}

func (m *mockSkillRepo) Delete(_ context.Context, userID uuid.UUID, name string) error {
	if _, ok := m.records[userID][name]; !ok {
		return repository.ErrUserSkillNotFound
	}
	delete(m.records[userID], name)
	return nil
}

func (m *mockSkillRepo) get(userID uuid.UUID, name string) (skill.Record, bool) {
	rec, ok := m.records[userID][name]
	return rec, ok
}

type mockArtifactRepo struct {
	courses        []artifact.Course
	projects       []artifact.Project
	certifications []artifact.Certification
	experience     []artifact.Experience
	deleteErr      error
}

func (m *mockArtifactRepo) CreateCourse(_ context.Context, c artifact.Course) (artifact.Course, error) {
	c.ID = uuid.New()
	m.courses = append(m.courses, c)
	return c, nil
}

func (m *mockArtifactRepo) ListCourses(context.Context, uuid.UUID) ([]artifact.Course, error) {
	return m.courses, nil
}

func (m *mockArtifactRepo) DeleteCourse(context.Context, uuid.UUID, uuid.UUID) error {
	return m.deleteErr
}

func (m *mockArtifactRepo) CreateProject(_ context.Context, p artifact.Project) (artifact.Project, error) {
	p.ID = uuid.New()
	m.projects = append(m.projects, p)
	return p, nil
}

func (m *mockArtifactRepo) ListProjects(context.Context, uuid.UUID) ([]artifact.Project, error) {
	return m.projects, nil
}

func (m *mockArtifactRepo) DeleteProject(context.Context, uuid.UUID, uuid.UUID) error {
	return m.deleteErr
}

func (m *mockArtifactRepo) CreateCertification(_ context.Context, c artifact.Certification) (artifact.Certification, error) {
	c.ID = uuid.New()
	m.certifications = append(m.certifications, c)
	return c, nil
}

func (m *mockArtifactRepo) ListCertifications(context.Context, uuid.UUID) ([]artifact.Certification, error) {
	return m.certifications, nil
}

func (m *mockArtifactRepo) DeleteCertification(context.Context, uuid.UUID, uuid.UUID) error {
	return m.deleteErr
}

func (m *mockArtifactRepo) CreateExperience(_ context.Context, e artifact.Experience) (artifact.Experience, error) {
	e.ID = uuid.New()
	m.experience = append(m.experience, e)
	return e, nil
}

func (m *mockArtifactRepo) ListExperience(context.Context, uuid.UUID) ([]artifact.Experience, error) {
	return m.experience, nil
}

func (m *mockArtifactRepo) DeleteExperience(context.Context, uuid.UUID, uuid.UUID) error {
	return m.deleteErr
}

func (m *mockArtifactRepo) CountByUser(context.Context, uuid.UUID) (user.ArtifactCounts, error) {
	return user.ArtifactCounts{
		Projects:       len(m.projects),
		Courses:        len(m.courses),
		Certifications: len(m.certifications),
		Experience:     len(m.experience),
	}, nil
}

type replacedMarket struct {
	role   string
	stats  []market.Stat
	jobs   int
	source string
}

type mockMarketRepo struct {
	byRole   map[string]repository.RoleMarket
	replaced []replacedMarket
	rolesN   int
	rolesErr error
	findErr  error
}

func (m *mockMarketRepo) FindByRole(_ context.Context, role string) (repository.RoleMarket, error) {
	if m.findErr != nil {
		return repository.RoleMarket{}, m.findErr
	}
	rm, ok := m.byRole[role]
	if !ok {
		return repository.RoleMarket{}, repository.ErrMarketNotFound
	}
	return rm, nil
}

func (m *mockMarketRepo) ReplaceForRole(_ context.Context, role string, stats []market.Stat, jobsAnalyzed int, source string) error {
	m.replaced = append(m.replaced, replacedMarket{role: role, stats: stats, jobs: jobsAnalyzed, source: source})
	if m.byRole == nil {
		m.byRole = make(map[string]repository.RoleMarket)
	}
	m.byRole[role] = repository.RoleMarket{
		TargetRole:   role,
		Stats:        stats,
		JobsAnalyzed: jobsAnalyzed,
		Source:       source,
		AnalyzedAt:   time.Now().UTC(),
	}
	return nil
}

func (m *mockMarketRepo) RolesAnalyzed(context.Context) (int, error) {
	if m.rolesErr != nil {
		return 0, m.rolesErr
	}
	return m.rolesN, nil
}

type mockPostingRepo struct {
	postings     map[uuid.UUID]job.Posting
	searchItems  []job.Posting
	searchTotal  int
	descriptions []string
	sources      []analysis.SourceStat
	sinceCount   int
	err          error
}

func (m *mockPostingRepo) Insert(_ context.Context, p job.Posting) (bool, error) {
	if m.postings == nil {
		m.postings = make(map[uuid.UUID]job.Posting)
	}
	m.postings[p.ID] = p
	return true, m.err
}

func (m *mockPostingRepo) FindByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	if m.err != nil {
		return job.Posting{}, m.err
	}
	p, ok := m.postings[id]
	if !ok {
		return job.Posting{}, repository.ErrPostingNotFound
	}
	return p, nil
}

func (m *mockPostingRepo) Search(context.Context, job.SearchParams, int) ([]job.Posting, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.searchItems, m.searchTotal, nil
}

func (m *mockPostingRepo) DescriptionsByRole(context.Context, string, int) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.descriptions, nil
}

func (m *mockPostingRepo) SourceStats(context.Context) ([]analysis.SourceStat, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sources, nil
}

func (m *mockPostingRepo) CountCollectedSince(context.Context, time.Time) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.sinceCount, nil
}
