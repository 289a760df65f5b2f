package types

// Answer labels offered by the questionnaire. They form closed sets: scoring only
// ever looks a label up in its dimension's weight table.
const (
	DefenseLetters     = "Letters"
	DefenseSlingshot   = "Slingshot"
	DefenseBaseballBat = "Baseball Bat"
	DefenseChainsaw    = "Chainsaw"
	DefenseCrossbow    = "Crossbow"

	EscapeBefriendZombies = "Befriend Zombies"
	EscapeShoppingMall    = "Shopping Mall"
	EscapeRovingBand      = "Roving Band"
	EscapeCountryside     = "Countryside"

	TolerancePanic  = "panic"
	ToleranceAvoid  = "avoid"
	ToleranceHandle = "handle"
	ToleranceFight  = "fight"

	StressPoorly   = "poorly"
	StressSomewhat = "somewhat"
	StressWell     = "well"
	StressThrive   = "thrive"

	LocationFlorida           = "Florida"
	LocationAbandonedHospital = "Abandoned Hospital"
	LocationGovernmentLab     = "Government Lab"
	LocationCemetery          = "Cemetery"
	LocationMegaMall          = "Mega-mall"
	LocationZombieApocalypse  = "Zombie Apocalypse"
)

// Labels returns the selectable labels of a scoring dimension. Thresholds and unknown
// dimensions have no labels.
func Labels(d Dimension) []string {
	switch d {
	case DimensionDefense:
		return []string{DefenseLetters, DefenseSlingshot, DefenseBaseballBat, DefenseChainsaw, DefenseCrossbow}
	case DimensionEscape:
		return []string{EscapeBefriendZombies, EscapeShoppingMall, EscapeRovingBand, EscapeCountryside}
	case DimensionTolerance:
		return []string{TolerancePanic, ToleranceAvoid, ToleranceHandle, ToleranceFight}
	case DimensionStress:
		return []string{StressPoorly, StressSomewhat, StressWell, StressThrive}
	case DimensionLocation:
		return []string{LocationFlorida, LocationAbandonedHospital, LocationGovernmentLab, LocationCemetery, LocationMegaMall}
	default:
		return nil
	}
}
