package sync

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotsync/pkg/clock"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/ignore"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// DefaultSkillIgnore lists provider and store entries the bundle flows
// never touch (provider-internal state, OS metadata).
var DefaultSkillIgnore = []string{".system", ".DS_Store"}

// DefaultContentIgnore lists names skipped inside bundles when
// materializing.
var DefaultContentIgnore = []string{".DS_Store"}

// Options are the immutable knobs for one run. The zero value gets the
// OS filesystem, the system clock, the backup policy and the default
// ignore rules.
type Options struct {
	// FS is the filesystem all operations go through.
	FS types.FS
	// Clock supplies backup timestamps.
	Clock clock.Clock
	// Policy decides what happens when a destination path is occupied.
	Policy types.Policy
	// Apply executes mutations; when false the run only plans.
	Apply bool
	// Filter excludes entry names from dotfile linking.
	Filter *ignore.Filter
	// SkillIgnore excludes entry names from bundle import and exposure.
	SkillIgnore []string
	// SkillContentIgnore excludes names inside bundles when materializing.
	SkillContentIgnore []string
}

// Syncer runs the engine's operations and accumulates their report.
// One Syncer is one run; create a fresh one to start a new report.
type Syncer struct {
	fs            types.FS
	clock         clock.Clock
	opts          Options
	filter        *ignore.Filter
	skillIgnore   map[string]struct{}
	contentIgnore map[string]struct{}
	logger        zerolog.Logger
	report        types.Report
}

// New creates a Syncer, filling unset options with defaults.
func New(opts Options) *Syncer {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Policy == "" {
		opts.Policy = types.PolicyBackup
	}
	if opts.Filter == nil {
		opts.Filter = ignore.Default()
	}
	if opts.SkillIgnore == nil {
		opts.SkillIgnore = DefaultSkillIgnore
	}
	if opts.SkillContentIgnore == nil {
		opts.SkillContentIgnore = DefaultContentIgnore
	}

	s := &Syncer{
		fs:            opts.FS,
		clock:         opts.Clock,
		opts:          opts,
		filter:        opts.Filter,
		skillIgnore:   make(map[string]struct{}, len(opts.SkillIgnore)),
		contentIgnore: make(map[string]struct{}, len(opts.SkillContentIgnore)),
		logger:        logging.GetLogger("sync"),
	}
	for _, n := range opts.SkillIgnore {
		s.skillIgnore[n] = struct{}{}
	}
	for _, n := range opts.SkillContentIgnore {
		s.contentIgnore[n] = struct{}{}
	}
	return s
}

// Report returns the actions recorded so far, in execution order.
func (s *Syncer) Report() *types.Report {
	return &s.report
}

func (s *Syncer) skillIgnored(name string) bool {
	_, ok := s.skillIgnore[name]
	return ok
}

func (s *Syncer) contentIgnored(name string) bool {
	_, ok := s.contentIgnore[name]
	return ok
}
