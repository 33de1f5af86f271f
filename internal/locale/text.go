package locale

// Key names a piece of user interface text.
type Key int

const (
	AppName Key = iota
	Tagline
	PoweredBy
	Loading
	HijriDate
	GregorianDate
	TodaysPrayers
	NextPrayer
	ChangeLocation
	CountryName
	CityName
	Search
	ThirtyDaySchedule
	RamadanTitle
	RamadanGreeting
	SwitchLanguage
	UnresolvedLocation
	Help
)

var texts = map[Key][2]string{
	AppName:            {"Sakeena", "سَكِينَة"},
	Tagline:            {"A tranquil platform for accurate prayer times worldwide", "منصة هادئة لمواقيت الصلاة الدقيقة في جميع أنحاء العالم"},
	PoweredBy:          {"Powered by Aladhan API", "مدعوم بواسطة Aladhan API"},
	Loading:            {"Loading...", "جاري التحميل..."},
	HijriDate:          {"Hijri Date", "التاريخ الهجري"},
	GregorianDate:      {"Gregorian Date", "التاريخ الميلادي"},
	TodaysPrayers:      {"Today's Prayer Times", "مواقيت الصلاة اليوم"},
	NextPrayer:         {"Next Prayer", "الصلاة القادمة"},
	ChangeLocation:     {"Change Location", "تغيير الموقع"},
	CountryName:        {"Country name", "اسم البلد"},
	CityName:           {"City name", "اسم المدينة"},
	Search:             {"Search", "بحث"},
	ThirtyDaySchedule:  {"30-Day Prayer Times", "مواقيت الصلاة لـ 30 يوم"},
	RamadanTitle:       {"Ramadan Mubarak", "رمضان مبارك"},
	RamadanGreeting:    {"May this blessed month bring peace and blessings", "كل عام وأنتم بخير"},
	SwitchLanguage:     {"العربية", "English"},
	UnresolvedLocation: {"Unable to fetch location", "تعذر تحديد الموقع"},
	Help:               {"l language · c location · r refresh · q quit", "l اللغة · c الموقع · r تحديث · q خروج"},
}

// Text returns the interface string for key in the locale, with the
// locale's numerals applied.
func (l Locale) Text(key Key) string {
	t, ok := texts[key]
	if !ok {
		return ""
	}
	return l.Digits(t[l])
}
