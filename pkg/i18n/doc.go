// Package i18n translates validation results into localized messages.
//
// A Catalog maps language codes to nested message templates. Templates are
// addressed with the translation key carried by every failing joi.Result and
// may reference rule parameters with %{name} placeholders:
//
//	en:
//	  validation:
//	    min: "must be at least %{min}, got %{value}"
//
// Language negotiation relies on golang.org/x/text/language. Missing keys fall
// back to the default language and then to the untranslated message, so a
// failing result always renders as a non-empty string.
//
//	catalog, err := i18n.Default()
//	if err != nil {
//		return err
//	}
//	lang := catalog.Match(r.Header.Get("Accept-Language"))
//	msg := catalog.Translate(lang, res)
package i18n
