package docgen

import (
	"context"
	"errors"

	"github.com/bps3210/simkak/pkg/preference"
	log "github.com/sirupsen/logrus"
)

const (
	SourceExplicit  = "explicit"
	SourceDefault   = "default"
	SourcePrimary   = "primary"
	SourceSecondary = "secondary"
)

var errNoDefault = errors.New("no default template")

// AssetStore is the read side of the template store.
type AssetStore interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	// QueryDefault returns the default template path, or the first available one.
	QueryDefault(ctx context.Context) (string, bool, error)
	// ProfileOf returns the mapping profile recorded for a stored template.
	ProfileOf(ctx context.Context, path string) (string, bool)
}

type ResolvedTemplate struct {
	Content []byte
	Source  string
	// Path is the store path or the external reference the content came from.
	Path string
	// Profile is empty for templates without a stored record.
	Profile string
}

type Resolver struct {
	assets       AssetStore
	preferences  preference.Store
	external     ExternalFetcher
	primaryUrl   string
	secondaryUrl string
}

func NewResolver(assets AssetStore, preferences preference.Store, external ExternalFetcher, primaryUrl, secondaryUrl string) *Resolver {
	return &Resolver{
		assets:       assets,
		preferences:  preferences,
		external:     external,
		primaryUrl:   primaryUrl,
		secondaryUrl: secondaryUrl,
	}
}

// Resolve tries the explicit path, the default template, then the primary and secondary external
// documents. Every configured source is attempted once; unconfigured ones are skipped.
func (r *Resolver) Resolve(ctx context.Context, explicitPath string) (ResolvedTemplate, error) {
	var attempts []Attempt[ResolvedTemplate]
	if explicitPath != "" {
		attempts = append(attempts, Attempt[ResolvedTemplate]{
			Name: SourceExplicit,
			Run: func(ctx context.Context) (ResolvedTemplate, error) {
				return r.fromStore(ctx, SourceExplicit, explicitPath)
			},
		})
	}
	attempts = append(attempts, Attempt[ResolvedTemplate]{Name: SourceDefault, Run: r.fromDefault})
	if r.primaryUrl != "" {
		attempts = append(attempts, r.fromExternal(SourcePrimary, r.primaryUrl))
	}
	if r.secondaryUrl != "" {
		attempts = append(attempts, r.fromExternal(SourceSecondary, r.secondaryUrl))
	}

	resolved, source, err := FirstOf(ctx, attempts...)
	if err != nil {
		return ResolvedTemplate{}, err
	}
	log.Debugf("Resolved template from %s source: %s", source, resolved.Path)
	return resolved, nil
}

func (r *Resolver) fromStore(ctx context.Context, source, path string) (ResolvedTemplate, error) {
	content, err := r.assets.Fetch(ctx, path)
	if err != nil {
		return ResolvedTemplate{}, err
	}
	profile, _ := r.assets.ProfileOf(ctx, path)
	return ResolvedTemplate{Content: content, Source: source, Path: path, Profile: profile}, nil
}

// fromDefault tries the preferred path first. A stale preference falls through to the store's
// own default, which is fetched only when it names a different file.
func (r *Resolver) fromDefault(ctx context.Context) (ResolvedTemplate, error) {
	preferred, ok, err := r.preferences.Get(ctx, preference.DefaultTemplatePathKey)
	if err != nil {
		log.Warnf("Could not read default template preference: %v", err)
	}
	var preferredErr error
	if ok && preferred != "" {
		resolved, err := r.fromStore(ctx, SourceDefault, preferred)
		if err == nil {
			return resolved, nil
		}
		log.Warnf("Preferred default template %s is unavailable: %v", preferred, err)
		preferredErr = err
	}
	path, ok, err := r.assets.QueryDefault(ctx)
	if err != nil {
		return ResolvedTemplate{}, errors.Join(preferredErr, err)
	}
	if !ok {
		return ResolvedTemplate{}, errors.Join(preferredErr, errNoDefault)
	}
	if preferredErr != nil && path == preferred {
		return ResolvedTemplate{}, preferredErr
	}
	return r.fromStore(ctx, SourceDefault, path)
}

func (r *Resolver) fromExternal(source, ref string) Attempt[ResolvedTemplate] {
	return Attempt[ResolvedTemplate]{
		Name: source,
		Run: func(ctx context.Context) (ResolvedTemplate, error) {
			content, err := r.external.Fetch(ctx, ref)
			if err != nil {
				return ResolvedTemplate{}, err
			}
			return ResolvedTemplate{Content: content, Source: source, Path: ref}, nil
		},
	}
}
