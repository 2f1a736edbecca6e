package monopoly

// BoardFactory builds a fresh board for one game. Every call must return
// independent field values: games mutate ownership in place, so sharing
// field instances across games would leak owners between them.
type BoardFactory func() []Field

// prisonIndex is where the go-to-prison teleport sends players on the
// classic board.
const prisonIndex = 10

// ClassicBoard builds the default 40-field board: a reward start field,
// two tax fields, eight color groups of streets, four airports, two
// utilities, chance/treasury fields, prison, casino and a go-to-prison
// teleport.
func ClassicBoard() []Field {
	return []Field{
		NewBuyField("Start", 1000, true),
		NewRentField("Lisbon", ColorBrown, 200, 60, 100),
		NewPrizeField(),
		NewRentField("Porto", ColorBrown, 200, 60, 100),
		NewBuyField("Income Tax", 2000, false),
		NewAirportField("Schiphol", 200, 60),
		NewRentField("Athens", ColorSky, 200, 60, 100),
		NewChanceField(),
		NewRentField("Thessaloniki", ColorSky, 200, 60, 100),
		NewRentField("Patras", ColorSky, 200, 60, 100),
		NewPrisonField(),
		NewRentField("Milan", ColorPurple, 200, 60, 100),
		NewCommunicateField("Mobile Network", 200, 60),
		NewRentField("Turin", ColorPurple, 200, 60, 100),
		NewRentField("Naples", ColorPurple, 200, 60, 100),
		NewAirportField("Heathrow", 200, 60),
		NewRentField("Hamburg", ColorOrange, 200, 60, 100),
		NewPrizeField(),
		NewRentField("Munich", ColorOrange, 200, 60, 100),
		NewRentField("Cologne", ColorOrange, 200, 60, 100),
		NewCasinoField(),
		NewRentField("Lyon", ColorRed, 200, 60, 100),
		NewChanceField(),
		NewRentField("Marseille", ColorRed, 200, 60, 100),
		NewRentField("Paris", ColorRed, 200, 60, 100),
		NewAirportField("Barajas", 200, 60),
		NewRentField("Valencia", ColorYellow, 200, 60, 100),
		NewRentField("Seville", ColorYellow, 200, 60, 100),
		NewCommunicateField("Internet", 200, 60),
		NewRentField("Madrid", ColorYellow, 200, 60, 100),
		NewTeleportField("Go To Prison", prisonIndex),
		NewRentField("Rotterdam", ColorGreen, 200, 60, 100),
		NewRentField("Utrecht", ColorGreen, 200, 60, 100),
		NewPrizeField(),
		NewRentField("Amsterdam", ColorGreen, 200, 60, 100),
		NewAirportField("Tegel", 200, 60),
		NewChanceField(),
		NewRentField("Vienna", ColorBlue, 200, 60, 100),
		NewBuyField("Luxury Tax", 1000, false),
		NewRentField("Berlin", ColorBlue, 200, 60, 100),
	}
}
