package task

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"

	"github.com/nibzard/pm-go/internal/pmdir"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644

	// keepFile keeps an empty tasks directory tracked by version control.
	keepFile = ".gitkeep"
)

// Project holds project metadata.
type Project struct {
	Name        string
	Description string
}

// Task represents a single tracked task.
type Task struct {
	ID          int
	Title       string
	Description string
	Labels      []string
	Status      Status
	Changes     Ledger
	Archived    bool

	slug string
}

// Slug returns the frozen file name stem of the task.
func (t *Task) Slug() string {
	return t.slug
}

// Since returns when the task entered its current status.
func (t *Task) Since() (time.Time, bool) {
	last, ok := t.Changes.Last()
	if !ok {
		return time.Time{}, false
	}
	return last.On, true
}

// Column is one status group of the board.
type Column struct {
	Status Status
	Tasks  []*Task
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for new changes.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDir overrides the tracking directory name (default "pm").
func WithDir(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.layout.Name = name
		}
	}
}

// Store is the in-memory form of a tracking directory.
type Store struct {
	Project Project

	layout pmdir.Layout
	tasks  []*Task // ascending by id
	now    func() time.Time
	logger *log.Logger
}

func newStore(root string, opts ...Option) *Store {
	s := &Store{
		layout: pmdir.New(root),
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init creates the tracking directory under root with an empty index.
func Init(root string, project Project, opts ...Option) (*Store, error) {
	s := newStore(root, opts...)
	project.Name = strings.TrimSpace(project.Name)
	if project.Name == "" {
		return nil, errors.New("project name is required")
	}

	dir := s.layout.DirPath()
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInitialized, dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(s.layout.TasksPath(), dirPerms); err != nil {
		return nil, fmt.Errorf("create tasks dir: %w", err)
	}
	if err := s.writeFile(filepath.Join(s.layout.TasksPath(), keepFile), nil); err != nil {
		return nil, err
	}

	s.Project = project
	if err := s.Save(); err != nil {
		return nil, err
	}
	s.logger.Debug("initialized", "dir", dir, "project", project.Name)
	return s, nil
}

// Load reads the index and every task file under root. Any mismatch
// between them is reported as ErrCorruptState; nothing is repaired.
func Load(root string, opts ...Option) (*Store, error) {
	s := newStore(root, opts...)

	indexPath := s.layout.IndexPath()
	data, err := os.ReadFile(indexPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if _, dirErr := os.Stat(s.layout.DirPath()); errors.Is(dirErr, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotInitialized, s.layout.DirPath())
			}
			return nil, corrupt(indexPath, "index file missing")
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	var doc indexDoc
	if err := decodeDocument(indexPath, data, indexSchema, &doc); err != nil {
		return nil, err
	}
	s.Project = Project{Name: doc.Meta.Name, Description: doc.Meta.Description}

	files, err := s.scanTaskFiles()
	if err != nil {
		return nil, err
	}

	indexed := make(map[int]bool, len(doc.Tasks))
	for _, entry := range doc.Tasks {
		if indexed[entry.ID] {
			return nil, corrupt(indexPath, "%w: %d listed twice", ErrDuplicateID, entry.ID)
		}
		indexed[entry.ID] = true

		if err := entry.Changes.Verify(); err != nil {
			return nil, corrupt(indexPath, "task %d: %w", entry.ID, err)
		}
		if want := entry.Changes.Status(); entry.Status != want {
			return nil, corrupt(indexPath, "task %d: status %s does not match history (%s)", entry.ID, entry.Status, want)
		}

		slug, ok := files[entry.ID]
		if !ok {
			pattern := filepath.Join(s.layout.TasksPath(), fmt.Sprintf("%0*d-*%s", idWidth, entry.ID, pmdir.TaskExt))
			return nil, corrupt(pattern, "task file missing for task %d", entry.ID)
		}
		detail, err := readDetail(s.layout.TaskPath(slug))
		if err != nil {
			return nil, err
		}

		s.tasks = append(s.tasks, &Task{
			ID:          entry.ID,
			Title:       detail.Title,
			Description: detail.Description,
			Labels:      NormalizeLabels(detail.Labels),
			Status:      entry.Status,
			Changes:     entry.Changes.Clone(),
			Archived:    entry.Archived,
			slug:        slug,
		})
	}

	orphans := make([]int, 0)
	for id := range files {
		if !indexed[id] {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) > 0 {
		sort.Ints(orphans)
		return nil, corrupt(s.layout.TaskPath(files[orphans[0]]), "task file has no index entry")
	}

	s.sortTasks()
	s.logger.Debug("loaded", "index", indexPath, "tasks", len(s.tasks))
	return s, nil
}

// scanTaskFiles maps task ids to file slugs found in the tasks directory.
func (s *Store) scanTaskFiles() (map[int]string, error) {
	dir := s.layout.TasksPath()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[int]string{}, nil
		}
		return nil, fmt.Errorf("read tasks dir: %w", err)
	}

	files := make(map[int]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		id, ok := ParseFileID(name)
		if !ok {
			return nil, corrupt(filepath.Join(dir, name), "not a task file name")
		}
		slug := strings.TrimSuffix(name, pmdir.TaskExt)
		if other, dup := files[id]; dup {
			return nil, corrupt(filepath.Join(dir, name), "%w: %d also used by %s%s", ErrDuplicateID, id, other, pmdir.TaskExt)
		}
		files[id] = slug
	}
	return files, nil
}

func readDetail(path string) (*detailDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	var doc detailDoc
	if err := decodeDocument(path, data, taskSchema, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save writes every task file and then the index, each through an
// atomic replace. Files whose content is unchanged are left alone.
func (s *Store) Save() error {
	if err := os.MkdirAll(s.layout.TasksPath(), dirPerms); err != nil {
		return fmt.Errorf("create tasks dir: %w", err)
	}

	for _, t := range s.tasks {
		data, err := encodeTask(t)
		if err != nil {
			return fmt.Errorf("encode task %d: %w", t.ID, err)
		}
		if err := s.writeFile(s.layout.TaskPath(t.slug), data); err != nil {
			return err
		}
	}

	data, err := s.encodeIndex()
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return s.writeFile(s.layout.IndexPath(), data)
}

func (s *Store) encodeIndex() ([]byte, error) {
	doc := indexDoc{
		Meta: metaDoc{
			Name:        s.Project.Name,
			Description: s.Project.Description,
		},
		Tasks: make([]entryDoc, 0, len(s.tasks)),
	}
	for _, t := range s.tasks {
		doc.Tasks = append(doc.Tasks, entryDoc{
			ID:       t.ID,
			Status:   t.Status,
			Archived: t.Archived,
			Changes:  t.Changes.Clone(),
		})
	}
	return encodeDocument(doc)
}

func encodeTask(t *Task) ([]byte, error) {
	return encodeDocument(detailDoc{
		Title:       t.Title,
		Description: t.Description,
		Labels:      NormalizeLabels(t.Labels),
	})
}

func (s *Store) writeFile(path string, data []byte) error {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		s.logger.Debug("unchanged", "path", path)
		return nil
	}
	isNew := errors.Is(err, fs.ErrNotExist)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	// atomic.WriteFile leaves new files with temp-file permissions.
	if isNew {
		if err := os.Chmod(path, filePerms); err != nil {
			return fmt.Errorf("chmod %s: %w", path, err)
		}
	}
	s.logger.Debug("wrote", "path", path, "bytes", len(data))
	return nil
}

// Layout returns the resolved directory layout of the store.
func (s *Store) Layout() pmdir.Layout {
	return s.layout
}

// NextID returns one more than the largest id ever allocated, or 1.
func (s *Store) NextID() int {
	highest := 0
	for _, t := range s.tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

// AddTask creates a Todo task with a fresh id and frozen slug.
func (s *Store) AddTask(title, description string, labels []string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("task title is required")
	}
	id := s.NextID()
	t := &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Labels:      NormalizeLabels(labels),
		Status:      StatusTodo,
		Changes:     Ledger{},
		slug:        Slug(id, title),
	}
	s.insert(t)
	s.logger.Debug("added task", "id", id, "slug", t.slug)
	return t, nil
}

func (s *Store) insert(t *Task) {
	i := sort.Search(len(s.tasks), func(i int) bool { return s.tasks[i].ID >= t.ID })
	s.tasks = append(s.tasks, nil)
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
}

func (s *Store) sortTasks() {
	sort.Slice(s.tasks, func(i, j int) bool { return s.tasks[i].ID < s.tasks[j].ID })
}

// Task returns the task with the given id.
func (s *Store) Task(id int) (*Task, error) {
	i := sort.Search(len(s.tasks), func(i int) bool { return s.tasks[i].ID >= id })
	if i < len(s.tasks) && s.tasks[i].ID == id {
		return s.tasks[i], nil
	}
	return nil, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
}

// Tasks returns all tasks, archived included, ascending by id.
func (s *Store) Tasks() []*Task {
	out := make([]*Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// TaskPath returns the path of the task's file.
func (s *Store) TaskPath(id int) (string, error) {
	t, err := s.Task(id)
	if err != nil {
		return "", err
	}
	return s.layout.TaskPath(t.slug), nil
}

// Transition applies a status change to the task with the given id.
func (s *Store) Transition(id int, to Status) (*Task, error) {
	t, err := s.Task(id)
	if err != nil {
		return nil, err
	}
	if err := Transition(t, to, s.now().UTC()); err != nil {
		return nil, err
	}
	s.logger.Debug("moved task", "id", id, "status", to)
	return t, nil
}

// Archive hides a task from the board. Its id stays reserved.
func (s *Store) Archive(id int) (*Task, error) {
	t, err := s.Task(id)
	if err != nil {
		return nil, err
	}
	t.Archived = true
	return t, nil
}

// SetTitle changes a task's title. The file name keeps its original slug.
func (s *Store) SetTitle(id int, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("task title is required")
	}
	t, err := s.Task(id)
	if err != nil {
		return err
	}
	t.Title = title
	return nil
}

// SetDescription replaces a task's description.
func (s *Store) SetDescription(id int, description string) error {
	t, err := s.Task(id)
	if err != nil {
		return err
	}
	t.Description = description
	return nil
}

// Board groups tasks by status in board order, ascending id in each group.
func (s *Store) Board(includeArchived bool) []Column {
	columns := make([]Column, 0, len(Statuses()))
	for _, status := range Statuses() {
		col := Column{Status: status}
		for _, t := range s.tasks {
			if t.Status != status || (t.Archived && !includeArchived) {
				continue
			}
			col.Tasks = append(col.Tasks, t)
		}
		columns = append(columns, col)
	}
	return columns
}
