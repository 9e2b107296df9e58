package viewmodel

import (
	"time"

	"golang.org/x/text/language"
)

// isoDateLayout is used when the locale is unknown.
const isoDateLayout = "2006-01-02"

// dateFormats mirrors the short numeric date style of common locales.
var dateFormats = []struct {
	layout string
	tag    language.Tag
}{
	{tag: language.AmericanEnglish, layout: "1/2/2006"},
	{tag: language.English, layout: "1/2/2006"},
	{tag: language.BritishEnglish, layout: "02/01/2006"},
	{tag: language.MustParse("en-IN"), layout: "2/1/2006"},
	{tag: language.Hindi, layout: "2/1/2006"},
	{tag: language.German, layout: "2.1.2006"},
	{tag: language.French, layout: "02/01/2006"},
	{tag: language.Spanish, layout: "2/1/2006"},
	{tag: language.Japanese, layout: "2006/1/2"},
	{tag: language.Chinese, layout: "2006/1/2"},
	{tag: language.Korean, layout: "2006. 1. 2."},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateFormats))
	for i, f := range dateFormats {
		tags[i] = f.tag
	}
	return language.NewMatcher(tags)
}()

// DateLayout returns the time layout for a BCP 47 locale such as "en-US".
func DateLayout(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return isoDateLayout
	}

	_, index, confidence := dateMatcher.Match(tag)
	if confidence == language.No || index < 0 || index >= len(dateFormats) {
		return isoDateLayout
	}
	return dateFormats[index].layout
}

// FormatDate renders the calendar date of t, without a time component.
func FormatDate(t time.Time, locale string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout(locale))
}
