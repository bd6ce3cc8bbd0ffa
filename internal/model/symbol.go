package model

// Symbol - символ на барабане слота
type Symbol string

const (
	SymbolCherry     Symbol = "cherry"
	SymbolLemon      Symbol = "lemon"
	SymbolOrange     Symbol = "orange"
	SymbolWatermelon Symbol = "watermelon"
)

// Symbols - алфавит символов, из которого идет розыгрыш
var Symbols = []Symbol{SymbolCherry, SymbolLemon, SymbolOrange, SymbolWatermelon}

// SymbolValues - таблица выплат за три одинаковых символа.
// Константа на весь процесс, не меняется в рантайме
var SymbolValues = map[Symbol]int{
	SymbolCherry:     10,
	SymbolLemon:      20,
	SymbolOrange:     30,
	SymbolWatermelon: 40,
}

// Payout - выплата за комбинацию из трех символов.
// Возвращает значение символа, если все три совпали, иначе 0
func Payout(symbols [3]Symbol) int {
	if symbols[0] == symbols[1] && symbols[1] == symbols[2] {
		return SymbolValues[symbols[0]]
	}
	return 0
}
