package i18n

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/joi/pkg/joi"
)

// DefaultLanguage is used when no language option is given.
const DefaultLanguage = "en"

// maxAcceptLanguageLength caps the header length handed to the parser.
const maxAcceptLanguageLength = 4096

// Catalog holds message templates per language. Templates are addressed by
// dot-separated keys ("validation.min") and use named placeholders in the
// form %{name}. A Catalog is read-only after construction and safe for
// concurrent use.
type Catalog struct {
	messages    map[string]map[string]any
	defaultLang string
	langs       []string // default language first
	matcher     language.Matcher
	logger      *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLanguage sets the language used when negotiation fails or a key
// is missing in the requested language.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) {
		if lang != "" {
			c.defaultLang = strings.ToLower(lang)
		}
	}
}

// WithLogger reports missing translations at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a catalog from language -> nested key -> template maps.
func New(messages map[string]map[string]any, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	if len(messages) == 0 {
		return nil, ErrNoTranslations
	}

	c.messages = make(map[string]map[string]any, len(messages))
	for lang, m := range messages {
		if _, err := language.Parse(lang); err != nil {
			return nil, errors.Join(fmt.Errorf("%w: %q", ErrInvalidLanguage, lang), err)
		}
		if m == nil {
			return nil, fmt.Errorf("%w: no messages for %q", ErrInvalidCatalog, lang)
		}
		c.messages[strings.ToLower(lang)] = m
	}

	if _, ok := c.messages[c.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: default language %q has no messages", ErrInvalidCatalog, c.defaultLang)
	}

	c.langs = append(c.langs, c.defaultLang)
	for _, lang := range slices.Sorted(maps.Keys(c.messages)) {
		if lang != c.defaultLang {
			c.langs = append(c.langs, lang)
		}
	}

	tags := make([]language.Tag, len(c.langs))
	for i, lang := range c.langs {
		tags[i] = language.Make(lang)
	}
	c.matcher = language.NewMatcher(tags)

	return c, nil
}

// ParseYAML builds a catalog from a YAML document keyed by language code.
func ParseYAML(data []byte, opts ...Option) (*Catalog, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	messages := make(map[string]map[string]any, len(raw))
	for lang, val := range raw {
		m, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrInvalidCatalog, lang, val)
		}
		messages[lang] = m
	}

	return New(messages, opts...)
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return ParseYAML(data, opts...)
}

// Languages returns the supported languages, default first.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.langs)
}

func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

// Match picks the best supported language for an Accept-Language header.
// Unparsable or unsupported preferences yield the default language.
func (c *Catalog) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return c.defaultLang
	}
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.defaultLang
	}

	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.defaultLang
	}
	return c.langs[idx]
}

// Lookup returns the raw template for key. The requested language is tried
// first, then the default language.
func (c *Catalog) Lookup(lang, key string) (string, bool) {
	for _, l := range []string{strings.ToLower(lang), c.defaultLang} {
		m, ok := c.messages[l]
		if !ok {
			continue
		}
		if tmpl, ok := lookup(m, key); ok {
			return tmpl, true
		}
	}
	return "", false
}

// T translates key with named parameters. A missing key is returned as is.
func (c *Catalog) T(lang, key string, params map[string]any) string {
	tmpl, ok := c.Lookup(lang, key)
	if !ok {
		c.logger.Debug("translation not found", slog.String("lang", lang), slog.String("key", key))
		return key
	}
	return format(tmpl, params)
}

// Translate renders a failing result in lang. The rule parameters and the
// field name are available to templates as %{min}, %{value}, %{field} and
// so on. Results without a template keep their original message; a passing
// result translates to "".
func (c *Catalog) Translate(lang string, res joi.Result) string {
	if !res.Failed() {
		return ""
	}
	tmpl, ok := c.Lookup(lang, res.Key())
	if !ok {
		c.logger.Debug("translation not found", slog.String("lang", lang), slog.String("key", res.Key()))
		return res.Message()
	}

	params := res.Params()
	if params == nil {
		params = make(map[string]any, 1)
	}
	if _, set := params["field"]; !set {
		params["field"] = res.Field()
	}
	return format(tmpl, params)
}

// lookup walks nested maps using a dot-separated key.
func lookup(m map[string]any, key string) (string, bool) {
	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, ok := val.(string)
			return s, ok
		}
		next, ok := val.(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}
	return "", false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// format substitutes %{name} placeholders. Unknown placeholders are kept.
func format(tmpl string, params map[string]any) string {
	if len(params) == 0 {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return fmt.Sprint(val)
		}
		return match
	})
}
