package i18n

import "errors"

var (
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrFailedToReadFile  = errors.New("failed to read translation file")
	ErrInvalidLanguage   = errors.New("invalid language code")
	ErrInvalidCatalog    = errors.New("invalid message catalog")
	ErrNoTranslations    = errors.New("catalog contains no languages")
)
