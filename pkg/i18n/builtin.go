package i18n

// Built-in RU/UZ tables. A locales file (see LoadFile) can override or
// extend these at startup.

const (
	KeyStart         = "start"
	KeyAskLang       = "ask_lang"
	KeyLangSwitched  = "lang_switched"
	KeyAskCompany    = "ask_company"
	KeyAskContact    = "ask_contact"
	KeyBtnSharePhone = "btn_share_phone"
	KeyAskModules    = "ask_modules"
	KeyAskRating     = "ask_rating"
	KeyAskPros       = "ask_pros"
	KeyAskCons       = "ask_cons"
	KeyAskBugs       = "ask_bugs"
	KeyAskMissing    = "ask_missing"
	KeyAskReady      = "ask_ready"
	KeyBtnYes        = "btn_yes"
	KeyBtnNo         = "btn_no"
	KeyBtnDone       = "btn_done"
	KeyCancel        = "cancel"
	KeyThanks        = "thanks"
	KeyChoose        = "choose"
	KeyInvalidRating = "invalid_rating"
	KeyDeliveryFail  = "delivery_failed"
	KeyHelp          = "help"
)

var builtin = map[string]*Locale{
	"ru": {
		Strings: map[string]string{
			KeyStart:         "Привет! Это бот для сбора обратной связи по агрегатору TripleA. Выберите язык и пройдите короткий опрос (2–3 минуты).",
			KeyAskLang:       "Выберите язык / Tilni tanlang:",
			KeyLangSwitched:  "Язык переключён на русский.",
			KeyAskCompany:    "1/7. Укажите название вашей компании (автопроката)",
			KeyAskContact:    "2/7. Нажмите кнопку, чтобы отправить ваш номер",
			KeyBtnSharePhone: "📞 Отправить номер",
			KeyAskModules:    "3/7. Что тестировали? Выберите варианты:",
			KeyAskRating:     "4/7. Оцените удобство",
			KeyAskPros:       "5/7. Что понравилось? (кратко)",
			KeyAskCons:       "6/7. Что было непонятно/неудобно? (кратко)",
			KeyAskBugs:       "7/7. Нашли ошибки/баги? Опишите, пожалуйста",
			KeyAskMissing:    "Что добавить в первую очередь? (обязательные функции)",
			KeyAskReady:      "Готовы продолжить тестирование после обновлений?",
			KeyBtnYes:        "Да",
			KeyBtnNo:         "Нет",
			KeyBtnDone:       "Готово",
			KeyCancel:        "Опрос прерван. Можно начать снова командой /start",
			KeyThanks:        "Спасибо! Ваш фидбек отправлен команде 👌",
			KeyChoose:        "Выберите вариант ниже:",
			KeyInvalidRating: "Выберите оценку кнопкой ниже",
			KeyDeliveryFail:  "⚠️ Не удалось отправить в группу. Попробуйте позже.",
			KeyHelp:          "Команды: /start — начать, /cancel — отменить, /lang — язык, /whereami — chat_id",
		},
		Modules: []Module{
			{Code: "client_bot", Label: "Клиентский Telegram‑бот"},
			{Code: "partner_bot", Label: "Партнёрский Telegram‑бот"},
			{Code: "partner_web", Label: "Веб‑кабинет партнёра"},
			{Code: "payments", Label: "Платежи/Инвойсы"},
			{Code: "notifications", Label: "Уведомления"},
			{Code: "reports", Label: "Отчёты/Аналитика"},
		},
	},
	"uz": {
		Strings: map[string]string{
			KeyStart:         "Salom! Bu bot TripleA agregatori bo‘yicha fikr-mulohazalarni yig‘adi. Tilni tanlang va qisqa so‘rovnomadan o‘ting (2–3 daqiqa).",
			KeyAskLang:       "Tilni tanlang / Выберите язык:",
			KeyLangSwitched:  "Til o‘zbek tiliga o‘zgartirildi.",
			KeyAskCompany:    "1/7. Kompaniyangiz nomi (avtoprokat)",
			KeyAskContact:    "2/7. Tugmani bosib telefon raqamingizni yuboring",
			KeyBtnSharePhone: "📞 Raqamni yuborish",
			KeyAskModules:    "3/7. Nimalarni sinadingiz? Variantlarni tanlang:",
			KeyAskRating:     "4/7. Qulaylikka baho bering",
			KeyAskPros:       "5/7. Nima yoqdi? (qisqa)",
			KeyAskCons:       "6/7. Nima tushunarsiz/noqulay bo‘ldi? (qisqa)",
			KeyAskBugs:       "7/7. Xatolik/bug bormi? Iltimos yozing",
			KeyAskMissing:    "Birinchi navbatda nimani qo‘shish kerak?",
			KeyAskReady:      "Yangilanishlardan so‘ng davom ettirasizmi?",
			KeyBtnYes:        "Ha",
			KeyBtnNo:         "Yo‘q",
			KeyBtnDone:       "Tayyor",
			KeyCancel:        "So‘rovnoma bekor qilindi. /start bilan qayta boshlang",
			KeyThanks:        "Rahmat! Fikr-mulohazangiz jamoaga yuborildi 👌",
			KeyChoose:        "Quyidan tanlang:",
			KeyInvalidRating: "Bahoni tugma orqali tanlang",
			KeyDeliveryFail:  "⚠️ Guruhga yuborib bo‘lmadi. Keyinroq urinib ko‘ring.",
			KeyHelp:          "Buyruqlar: /start — boshlash, /cancel — bekor, /lang — til, /whereami — chat_id",
		},
		Modules: []Module{
			{Code: "client_bot", Label: "Mijoz Telegram boti"},
			{Code: "partner_bot", Label: "Hamkor Telegram boti"},
			{Code: "partner_web", Label: "Hamkor veb kabineti"},
			{Code: "payments", Label: "To‘lovlar/Hisob-faktura"},
			{Code: "notifications", Label: "Bildirishnomalar"},
			{Code: "reports", Label: "Hisobot/Analitika"},
		},
	},
}
