package market

// salesStats are the monthly sales and product share of the village shop.
var salesStats = Stats{
	Sales: Chart{
		Labels: []string{"Јан", "Феб", "Мар", "Апр", "Мај", "Јун"},
		Datasets: []Dataset{
			{Label: "Продаја (ЗПЛ)", Data: []int{1200, 1900, 3000, 5000, 4000, 3000}},
		},
	},
	ProductShare: Chart{
		Labels: []string{"Мед", "Сир", "Прасићи", "Ракија"},
		Datasets: []Dataset{
			{Label: "Удео производа", Data: []int{30, 25, 25, 20}},
		},
	},
}
