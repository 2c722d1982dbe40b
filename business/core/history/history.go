// Package history provides the transaction history shown to every member.
// The rows and charts are sample data: transfers and purchases are not
// recorded here.
package history

import (
	"errors"
	"fmt"

	"github.com/zaplanje/coin/business/core/balance"
)

// Set of transaction types.
const (
	TypeSend    = "send"
	TypeReceive = "receive"
	TypeMining  = "mining"
)

// ErrInvalidType is returned when filtering by an unknown type.
var ErrInvalidType = errors.New("invalid transaction type")

// Transaction is a single row of the history.
type Transaction struct {
	ID           int         `json:"id"`
	Type         string      `json:"type"`
	Amount       balance.ZPL `json:"amount"`
	Counterparty string      `json:"counterparty,omitempty"`
	Date         string      `json:"date"`
	Time         string      `json:"time"`
	Status       string      `json:"status"`
}

// Card is one headline statistic.
type Card struct {
	Title      string `json:"title"`
	Value      string `json:"value"`
	Trend      string `json:"trend"`
	IsPositive bool   `json:"is_positive"`
}

// Series is one line or bar set of a chart.
type Series struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

// Chart holds labels and the series plotted over them.
type Chart struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Stats bundles everything the statistics tab shows.
type Stats struct {
	Cards        []Card `json:"cards"`
	Monthly      Chart  `json:"monthly"`
	BalanceTrend Chart  `json:"balance_trend"`
}

var transactions = []Transaction{
	{ID: 1, Type: TypeSend, Amount: balance.FromFloat(100), Counterparty: "Марко П.", Date: "12.03.2024", Time: "14:23", Status: "completed"},
	{ID: 2, Type: TypeReceive, Amount: balance.FromFloat(50), Counterparty: "Јована С.", Date: "11.03.2024", Time: "09:45", Status: "completed"},
	{ID: 3, Type: TypeMining, Amount: balance.FromFloat(100), Date: "10.03.2024", Time: "22:15", Status: "completed"},
}

var cards = []Card{
	{Title: "Укупно Трансакција", Value: "1,234", Trend: "+12.5%", IsPositive: true},
	{Title: "Месечни Промет", Value: "456.78 ЗПЛ", Trend: "+8.3%", IsPositive: true},
	{Title: "Просечна Трансакција", Value: "45.6 ЗПЛ", Trend: "-2.1%", IsPositive: false},
}

var monthly = Chart{
	Labels: []string{"Јан", "Феб", "Мар", "Апр", "Мај", "Јун"},
	Series: []Series{
		{Label: "Послато", Data: []int{300, 450, 320, 500, 420, 350}},
		{Label: "Примљено", Data: []int{400, 300, 450, 380, 460, 400}},
	},
}

var balanceTrend = Chart{
	Labels: []string{"1", "5", "10", "15", "20", "25", "30"},
	Series: []Series{
		{Label: "Стање", Data: []int{1000, 1200, 1150, 1300, 1250, 1400, 1350}},
	},
}

// Query returns the history rows, optionally only those of one type.
func Query(typ string) ([]Transaction, error) {
	switch typ {
	case "":
		return append([]Transaction(nil), transactions...), nil

	case TypeSend, TypeReceive, TypeMining:
		out := []Transaction{}
		for _, tx := range transactions {
			if tx.Type == typ {
				out = append(out, tx)
			}
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidType, typ)
}

// Summary returns the headline statistic cards.
func Summary() []Card {
	return append([]Card(nil), cards...)
}

// Monthly returns the sent and received totals per month.
func Monthly() Chart {
	return monthly
}

// BalanceTrend returns the balance over the days of the month.
func BalanceTrend() Chart {
	return balanceTrend
}

// Statistics bundles the cards and charts.
func Statistics() Stats {
	return Stats{
		Cards:        Summary(),
		Monthly:      Monthly(),
		BalanceTrend: BalanceTrend(),
	}
}
