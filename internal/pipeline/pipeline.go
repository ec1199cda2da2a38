// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pipeline runs the slide post-processing passes in order. Every
// pass works on a copy of the slide; a pass that fails or panics is rolled
// back and recorded, and the slide continues with the last good state.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"slidepress/internal/collab"
	"slidepress/internal/enrich"
	"slidepress/internal/layout"
	"slidepress/internal/models"
)

// Options configures a Pipeline. Zero values select defaults.
type Options struct {
	Heuristics *layout.Heuristics
	Validator  *collab.ComponentValidator
	Cache      *LayoutCache
	Metrics    *Metrics
	Now        func() time.Time
}

// Pipeline applies the post-processing passes to slides. It holds no
// per-slide state and is safe for concurrent use.
type Pipeline struct {
	heuristics layout.Heuristics
	validator  *collab.ComponentValidator
	adapter    collab.ThemeAdapter
	cache      *LayoutCache
	metrics    *Metrics
	now        func() time.Time
	passes     []pass
}

// run is one pass over a slide. The slide is a private copy.
type run func(s *models.Slide, env *layout.Env) error

type pass struct {
	name string
	run  run
}

// ErrNilSlide is returned when Process is given no slide.
var ErrNilSlide = errors.New("pipeline: nil slide")

// New creates a pipeline.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		heuristics: layout.DefaultHeuristics(),
		validator:  opts.Validator,
		cache:      opts.Cache,
		metrics:    opts.Metrics,
		now:        opts.Now,
	}
	if opts.Heuristics != nil {
		p.heuristics = *opts.Heuristics
	}
	if p.validator == nil {
		p.validator = collab.NewComponentValidator(nil)
	}
	if p.now == nil {
		p.now = time.Now
	}
	p.passes = p.defaultPasses()
	return p
}

// Cache returns the layout cache, which may be nil.
func (p *Pipeline) Cache() *LayoutCache { return p.cache }

// components adapts a layout pass to run.
func components(fn func(*layout.Env, []models.Component) ([]models.Component, error)) run {
	return func(s *models.Slide, env *layout.Env) error {
		out, err := fn(env, s.Components)
		if err != nil {
			return err
		}
		s.Components = out
		return nil
	}
}

// defaultPasses lists the passes in the order they must run. Structure
// runs before normalisation so that placement sees the model's own
// coordinates; the hero pass runs before adjacency so icons pair against
// final visual positions.
func (p *Pipeline) defaultPasses() []pass {
	return []pass{
		{"assign_ids", components(layout.AssignIDs)},
		{"theme_panel", p.themePanel},
		{"background", components(layout.EnsureBackground)},
		{"structure", components(layout.ApplyStructure)},
		{"lines", components(layout.NormalizeLines)},
		{"normalize", components(layout.NormalizeComponents)},
		{"declutter", components(layout.DeclutterVisuals)},
		{"adjacency", components(layout.PairIconsWithText)},
		{"logo", components(layout.InjectLogo)},
		{"background_fallback", components(layout.GuaranteeBackground)},
		{"validate", p.validate},
		{"attach_theme", attachTheme},
		{"theme_colors", components(layout.EnforceThemeColors)},
		{"fonts", components(layout.EnforceFonts)},
		{"apply_theme", p.applyTheme},
		{"enrich", outlineValues},
	}
}

func (p *Pipeline) themePanel(s *models.Slide, env *layout.Env) error {
	if s.ThemePanel != nil {
		return nil
	}
	if env.Theme == nil {
		return layout.ErrNoTheme
	}
	s.ThemePanel = p.adapter.BuildFrontendTheme(env.Theme)
	return nil
}

func (p *Pipeline) validate(s *models.Slide, env *layout.Env) error {
	s.Components = p.validator.ValidateComponents(s.Components, env.Theme)
	return nil
}

func attachTheme(s *models.Slide, env *layout.Env) error {
	if env.Theme != nil {
		s.Theme = env.Theme
	}
	if env.Palette != nil {
		s.Palette = env.Palette
	}
	return nil
}

func (p *Pipeline) applyTheme(s *models.Slide, env *layout.Env) error {
	if s.ThemePanel == nil && env.Theme == nil {
		return layout.ErrNoTheme
	}
	s.Components = p.adapter.ApplyThemeToComponents(s.Components, s.ThemePanel, env.Theme)
	return nil
}

func outlineValues(s *models.Slide, env *layout.Env) error {
	s.Components = enrich.InjectOutlineValues(s.Components, env.Context.SlideOutline)
	return nil
}

// Process runs every pass over slide and returns the processed copy with
// a report. The input slide is not modified. Pass failures never abort
// the run; only a nil slide or a cancelled context returns an error.
func (p *Pipeline) Process(ctx context.Context, slide *models.Slide, sctx *models.Context) (*models.Slide, *Report, error) {
	if slide == nil {
		return nil, nil, ErrNilSlide
	}
	if sctx == nil {
		sctx = &models.Context{}
	}
	cur, err := slide.Clone()
	if err != nil {
		return nil, nil, err
	}

	env := p.env(cur, sctx)
	report := &Report{}
	for _, ps := range p.passes {
		if err := ctx.Err(); err != nil {
			p.metrics.IncSlide("cancelled")
			return nil, report, fmt.Errorf("process slide %d: %w", sctx.SlideIndex, err)
		}
		cur = p.runPass(ps, cur, env, report)
	}
	cur.GeneratedAt = p.now().UTC().Format(time.RFC3339)

	outcome := "ok"
	if !report.OK() {
		outcome = "degraded"
	}
	p.metrics.IncSlide(outcome)
	return cur, report, nil
}

// env resolves the per-slide inputs. Explicit context values win over what
// the slide already carries.
func (p *Pipeline) env(s *models.Slide, sctx *models.Context) *layout.Env {
	theme, palette := sctx.Theme, sctx.Palette
	if theme == nil {
		theme = s.Theme
	}
	if palette == nil {
		palette = s.Palette
	}

	structure := sctx.Structure
	if structure == nil {
		structure = s.ThemeStructure
	}
	if structure == nil {
		structure = p.cache.Structure(sctx.DeckID, theme, palette, slideType(sctx))
	}

	colors := p.cache.Colors(sctx.DeckID, theme, palette)
	env := layout.NewEnv(sctx, theme, palette, structure, colors, p.heuristics)
	env.LineStyler = collab.NewSmartLineStyler(colors)
	return env
}

// runPass applies one pass to a copy of cur and returns the slide to carry
// forward.
func (p *Pipeline) runPass(ps pass, cur *models.Slide, env *layout.Env, report *Report) *models.Slide {
	start := time.Now()
	next, err := cur.Clone()
	if err == nil {
		err = safeRun(ps, next, env)
	}
	elapsed := time.Since(start)

	var perr *PassError
	switch {
	case err == nil:
		p.metrics.ObservePass(ps.name, "ok", elapsed)
		report.Applied = append(report.Applied, ps.name)
		slog.Debug("pipeline pass applied", "pass", ps.name, "slide_index", env.Context.SlideIndex, "duration", elapsed)
		return next
	case errors.Is(err, layout.ErrNoTheme):
		p.metrics.ObservePass(ps.name, "skipped", elapsed)
		report.Skipped = append(report.Skipped, ps.name)
		slog.Warn("pipeline pass skipped: no theme", "pass", ps.name, "slide_index", env.Context.SlideIndex)
		return cur
	case errors.As(err, &perr):
		reason := "error"
		if perr.Panicked {
			reason = "panic"
		}
		p.metrics.ObservePass(ps.name, reason, elapsed)
		p.metrics.IncPassFailure(ps.name, reason)
		report.Failed = append(report.Failed, perr)
		slog.Warn("pipeline pass failed", "pass", ps.name, "slide_index", env.Context.SlideIndex, "error", err)
		return cur
	default:
		perr = &PassError{Pass: ps.name, Err: err}
		p.metrics.ObservePass(ps.name, "error", elapsed)
		p.metrics.IncPassFailure(ps.name, "error")
		report.Failed = append(report.Failed, perr)
		slog.Warn("pipeline pass failed", "pass", ps.name, "slide_index", env.Context.SlideIndex, "error", err)
		return cur
	}
}

// safeRun converts a panic inside a pass into a PassError.
func safeRun(ps pass, s *models.Slide, env *layout.Env) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PassError{Pass: ps.name, Err: fmt.Errorf("%v", r), Panicked: true}
		}
	}()
	return ps.run(s, env)
}
