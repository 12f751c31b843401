package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/geo"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/observability"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/qrcode"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
	"github.com/aussiebroadwan/qrhub/pkg/idx"
	"github.com/aussiebroadwan/qrhub/pkg/slogx"
)

const (
	trackRetries     = 3
	trackBackoffBase = 10 * time.Millisecond
)

type ProjectService struct {
	Store   store.Store
	Locator geo.Locator
	Metrics *observability.Metrics

	// BaseURL prefixes the /track link encoded into rendered QR images.
	BaseURL string

	Now func() time.Time
}

func (s *ProjectService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// TrackURL is the public scan link for a project.
func (s *ProjectService) TrackURL(id string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/track/" + id
}

type CreateProjectInput struct {
	Name    string
	Payload string
	QRImage string
	FgColor string
	BgColor string
}

// Create stores a new project owned by owner. Without a client supplied
// image the server renders one pointing at the project's track URL.
func (s *ProjectService) Create(ctx context.Context, owner string, in CreateProjectInput) (domain.Project, error) {
	name := strings.TrimSpace(in.Name)
	payload := strings.TrimSpace(in.Payload)
	if name == "" || payload == "" {
		return domain.Project{}, ErrInvalidInput
	}

	now := s.now()
	p := domain.Project{
		ID:        idx.NewAt(now).String(),
		Kind:      domain.KindProject,
		Name:      name,
		Payload:   payload,
		QRImage:   strings.TrimSpace(in.QRImage),
		FgColor:   strings.TrimSpace(in.FgColor),
		BgColor:   strings.TrimSpace(in.BgColor),
		OwnerID:   owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.ApplyDefaults()
	if err := checkColors(&p.FgColor, &p.BgColor); err != nil {
		return domain.Project{}, err
	}

	if p.QRImage == "" {
		if err := s.render(&p); err != nil {
			return domain.Project{}, err
		}
	}

	created, err := s.Store.Projects().Create(ctx, p)
	if err != nil {
		return domain.Project{}, fmt.Errorf("create project: %w", err)
	}
	slogx.FromContext(ctx).Info("project created",
		slog.String("project_id", created.ID),
		slog.String("owner", owner),
	)
	return created, nil
}

// List returns owner's projects, newest first.
func (s *ProjectService) List(ctx context.Context, owner string) ([]domain.Project, error) {
	projects, err := s.Store.Projects().ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Get returns the project if requester may see it.
func (s *ProjectService) Get(ctx context.Context, requester, id string) (domain.Project, error) {
	p, err := s.Lookup(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	if err := AuthorizeOwner(p.OwnerID, requester); err != nil {
		slogx.FromContext(ctx).Warn("project access denied",
			slog.String("project_id", id),
			slog.String("requester", requester),
		)
		return domain.Project{}, err
	}
	return p, nil
}

// Lookup is the unauthenticated read behind the public analytics routes.
func (s *ProjectService) Lookup(ctx context.Context, id string) (domain.Project, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Project{}, ErrProjectNotFound
	}
	p, err := s.Store.Projects().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Project{}, ErrProjectNotFound
	}
	if err != nil {
		return domain.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// Update applies patch. When the colours change and no new image comes
// with them, a server rendered image is regenerated.
func (s *ProjectService) Update(ctx context.Context, requester, id string, patch domain.ProjectPatch) (domain.Project, error) {
	p, err := s.Get(ctx, requester, id)
	if err != nil {
		return domain.Project{}, err
	}

	if err := checkColors(patch.FgColor, patch.BgColor); err != nil {
		return domain.Project{}, err
	}

	fg, bg := p.FgColor, p.BgColor
	if !patch.Apply(&p, s.now()) {
		return p, nil
	}
	if isBlank(patch.QRImage) && (p.FgColor != fg || p.BgColor != bg) {
		if err := s.render(&p); err != nil {
			return domain.Project{}, err
		}
	}

	written, err := s.Store.Projects().Replace(ctx, p)
	if err != nil {
		return domain.Project{}, s.conflict(writeErr(err, ErrProjectNotFound))
	}
	return written, nil
}

// UpdateColors is Update restricted to the appearance fields.
func (s *ProjectService) UpdateColors(ctx context.Context, requester, id string, patch domain.ProjectPatch) (domain.Project, error) {
	return s.Update(ctx, requester, id, patch.ColorsOnly())
}

func (s *ProjectService) Delete(ctx context.Context, requester, id string) error {
	if _, err := s.Get(ctx, requester, id); err != nil {
		return err
	}
	if err := s.Store.Projects().Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Scan describes one visit to /track.
type Scan struct {
	UserAgent string
	IP        string
}

// Track records a scan and returns the updated project. The event is built
// once, after the first successful read; only the read-modify-write is
// retried on etag conflicts.
func (s *ProjectService) Track(ctx context.Context, id string, scan Scan) (domain.Project, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(id) == "" {
		return domain.Project{}, ErrProjectNotFound
	}

	var (
		ev      *domain.ScanEvent
		tracked domain.Project
	)
	backoff := retry.WithMaxRetries(trackRetries, retry.NewExponential(trackBackoffBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		p, err := s.Store.Projects().Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrProjectNotFound
		}
		if err != nil {
			return err
		}

		if ev == nil {
			built := s.scanEvent(ctx, scan)
			ev = &built
		}
		p.RecordScan(*ev)
		written, err := s.Store.Projects().Replace(ctx, p)
		switch {
		case errors.Is(err, store.ErrPreconditionFailed):
			s.Metrics.Conflict("projects")
			log.Debug("scan write conflicted, retrying", slog.String("project_id", id))
			return retry.RetryableError(err)
		case errors.Is(err, store.ErrNotFound):
			return ErrProjectNotFound
		case err != nil:
			return err
		}
		tracked = written
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrProjectNotFound):
		return domain.Project{}, err
	case errors.Is(err, store.ErrPreconditionFailed):
		return domain.Project{}, ErrConflict
	default:
		return domain.Project{}, fmt.Errorf("track scan: %w", err)
	}

	s.Metrics.ScanRecorded()
	return tracked, nil
}

func (s *ProjectService) scanEvent(ctx context.Context, scan Scan) domain.ScanEvent {
	browser, os, device := parseUserAgent(scan.UserAgent)
	ev := domain.ScanEvent{
		Timestamp: s.now(),
		UserAgent: scan.UserAgent,
		Browser:   browser,
		OS:        os,
		Device:    device,
		IP:        scan.IP,
	}

	if s.Locator != nil && scan.IP != "" {
		loc, err := s.Locator.Locate(ctx, scan.IP)
		switch {
		case err == nil:
			ev.Location = loc
		case errors.Is(err, geo.ErrNotRoutable):
		default:
			slogx.FromContext(ctx).Debug("geolocation skipped", slog.Any("error", err))
		}
	}
	return ev
}

func (s *ProjectService) render(p *domain.Project) error {
	img, err := qrcode.Render(s.TrackURL(p.ID), p.FgColor, p.BgColor, 0)
	if errors.Is(err, qrcode.ErrInvalidColor) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err != nil {
		return fmt.Errorf("render qr: %w", err)
	}
	p.QRImage = img
	return nil
}

// checkColors skips nil and blank values; those never overwrite.
func checkColors(colors ...*string) error {
	for _, c := range colors {
		if isBlank(c) {
			continue
		}
		if _, err := qrcode.ParseHexColor(*c); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	return nil
}

func isBlank(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }

func (s *ProjectService) conflict(err error) error {
	if errors.Is(err, ErrConflict) {
		s.Metrics.Conflict("projects")
	}
	return err
}
