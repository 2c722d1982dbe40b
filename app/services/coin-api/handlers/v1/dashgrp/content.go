package dashgrp

// Feature is one card of the dashboard.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Section is one part of the "learn more" panel.
type Section struct {
	Title string   `json:"title"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

// Dashboard is the landing content of the application.
type Dashboard struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Features    []Feature `json:"features"`
	JoinText    string    `json:"join_text"`
	AppLink     string    `json:"app_link"`
	About       []Section `json:"about"`
	TotalUsers  int       `json:"total_users"`
	MaxUsers    int       `json:"max_users"`
}

func content(appLink string, maxUsers int) Dashboard {
	return Dashboard{
		Title: "Заплање-коин",
		Description: "Децентрализовани систем дигиталне валуте намењен за заједницу до 200 корисника. " +
			"Свака трансакција је сигурна и непроменљива захваљујући блокчејн технологији.",
		Features: []Feature{
			{
				Title:       "Сигурност Система",
				Description: "Напредни криптографски алгоритми штите сваку трансакцију. Блокчејн технологија осигурава непроменљивост података.",
			},
			{
				Title:       "Локална Заједница",
				Description: "Дизајниран за заједницу до 200 корисника, фокусиран на једноставност коришћења и ефикасност.",
			},
			{
				Title:       "Транспарентност",
				Description: "Све трансакције су јавно видљиве и проверљиве, обезбеђујући потпуну транспарентност система.",
			},
			{
				Title:       "Брзо Придруживање",
				Description: "Скенирајте QR код да бисте приступили апликацији:",
			},
		},
		JoinText: "Сазнајте више",
		AppLink:  appLink,
		About: []Section{
			{
				Title: "Технологија",
				Text: "Заплање-коин користи модерну блокчејн технологију прилагођену потребама локалне заједнице. " +
					"Систем је оптимизован за брзе трансакције и минималну потрошњу ресурса, што га чини идеалним за свакодневну употребу.",
			},
			{
				Title: "Сигурност и Приватност",
				Text: "Свака трансакција је заштићена напредним криптографским алгоритмима. Корисници имају потпуну " +
					"контролу над својим средствима, док систем обезбеђује транспарентност и непроменљивост свих трансакција.",
			},
			{
				Title: "Рударење и Награде",
				Text: "Корисници могу зарадити Заплање-коине кроз процес рударења, помажући у одржавању мреже. " +
					"За сваки успешно додат блок, рудар добија награду од 100 ЗПЛ. Систем је дизајниран тако " +
					"да рударење буде доступно свим корисницима, без потребе за специјализованом опремом.",
			},
			{
				Title: "Предности Система",
				Items: []string{
					"Брзе и сигурне трансакције између корисника",
					"Минимални трошкови одржавања система",
					"Једноставан кориснички интерфејс",
					"Потпуна транспарентност свих трансакција",
					"Аутоматско креирање новчаника за нове кориснике",
				},
			},
			{
				Title: "Техничке Спецификације",
				Items: []string{
					"Максимални број корисника: 200",
					"Време између блокова: 5 минута",
					"Награда за рударење: 100 ЗПЛ",
					"Алгоритам консензуса: Proof of Work (прилагођен за малу мрежу)",
				},
			},
		},
		MaxUsers: maxUsers,
	}
}
