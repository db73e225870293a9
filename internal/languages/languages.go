// Package languages lists the languages that can be learned.
package languages

// Language is a learnable language.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
	Flag       string `json:"flag"`
	SpeechCode string `json:"speechCode"`
}

// DefaultSpeechCode is used for codes without a known speech locale.
const DefaultSpeechCode = "en-US"

// English can be a native language but is not offered as a course.
var English = Language{Code: "en", Name: "English", NativeName: "English", Flag: "🇬🇧", SpeechCode: "en-US"}

var all = []Language{
	{Code: "it", Name: "Italian", NativeName: "Italiano", Flag: "🇮🇹", SpeechCode: "it-IT"},
	{Code: "es", Name: "Spanish", NativeName: "Español", Flag: "🇪🇸", SpeechCode: "es-ES"},
	{Code: "fr", Name: "French", NativeName: "Français", Flag: "🇫🇷", SpeechCode: "fr-FR"},
	{Code: "de", Name: "German", NativeName: "Deutsch", Flag: "🇩🇪", SpeechCode: "de-DE"},
	{Code: "pt", Name: "Portuguese", NativeName: "Português", Flag: "🇵🇹", SpeechCode: "pt-PT"},
	{Code: "nl", Name: "Dutch", NativeName: "Nederlands", Flag: "🇳🇱", SpeechCode: "nl-NL"},
	{Code: "pl", Name: "Polish", NativeName: "Polski", Flag: "🇵🇱", SpeechCode: "pl-PL"},
	{Code: "ro", Name: "Romanian", NativeName: "Română", Flag: "🇷🇴", SpeechCode: "ro-RO"},
	{Code: "cs", Name: "Czech", NativeName: "Čeština", Flag: "🇨🇿", SpeechCode: "cs-CZ"},
	{Code: "sv", Name: "Swedish", NativeName: "Svenska", Flag: "🇸🇪", SpeechCode: "sv-SE"},
	{Code: "el", Name: "Greek", NativeName: "Ελληνικά", Flag: "🇬🇷", SpeechCode: "el-GR"},
	{Code: "hu", Name: "Hungarian", NativeName: "Magyar", Flag: "🇭🇺", SpeechCode: "hu-HU"},
	{Code: "da", Name: "Danish", NativeName: "Dansk", Flag: "🇩🇰", SpeechCode: "da-DK"},
	{Code: "no", Name: "Norwegian", NativeName: "Norsk", Flag: "🇳🇴", SpeechCode: "no-NO"},
	{Code: "fi", Name: "Finnish", NativeName: "Suomi", Flag: "🇫🇮", SpeechCode: "fi-FI"},
}

// All returns the learnable languages in display order.
func All() []Language {
	result := make([]Language, len(all))
	copy(result, all)
	return result
}

// ByCode returns the learnable language with the given code.
func ByCode(code string) (Language, bool) {
	for _, l := range all {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Native returns the languages a learner can declare as native: English
// followed by every learnable language.
func Native() []Language {
	return append([]Language{English}, all...)
}

// IsNative reports whether code can be a native language.
func IsNative(code string) bool {
	if code == English.Code {
		return true
	}
	_, ok := ByCode(code)
	return ok
}

// SpeechCode returns the BCP 47 locale used to pronounce code.
func SpeechCode(code string) string {
	if l, ok := ByCode(code); ok {
		return l.SpeechCode
	}
	return DefaultSpeechCode
}

// Label renders a language as "flag name", or the bare code when unknown.
func Label(code string) string {
	if code == English.Code {
		return English.Flag + " " + English.Name
	}
	if l, ok := ByCode(code); ok {
		return l.Flag + " " + l.Name
	}
	return code
}
