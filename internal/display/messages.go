package display

// Messages is the user-facing text of one locale.
type Messages struct {
	Header   string
	Results  string
	Prices   string
	CallGrk  string
	PutGrk   string
	Farewell string

	CallPrice string
	PutPrice  string
	Delta     string
	Gamma     string
	Vega      string
	Theta     string
	Rho       string
	PerDay    string

	Status         string
	StatusITM      string
	StatusOTM      string
	StatusATM      string
	MoneynessRatio string

	EnterParameters string
	PromptSpot      string
	PromptStrike    string
	PromptRate      string
	PromptVol       string
	PromptMaturity  string

	NotANumber          string
	SpotPositive        string
	StrikePositive      string
	VolNonNegative      string
	MaturityNonNegative string
	InvalidRate         string
	Interrupted         string
	Computing           string
	ValidationError     string
	UnexpectedError     string
	CheckParameters     string
	ContactSupport      string

	Parameters     string
	SpotLabel      string
	StrikeLabel    string
	MaturityLabel  string
	VolLabel       string
	RateLabel      string
	CallPriceTitle string
	PutPriceTitle  string
	CallPnLTitle   string
	PutPnLTitle    string
	PurchasePrice  string
}

var catalogs = map[string]Messages{
	"fr": {
		Header:   "BLACK-SCHOLES OPTION PRICING BOT",
		Results:  "RÉSULTATS",
		Prices:   "PRIX DES OPTIONS",
		CallGrk:  "GREEKS DU CALL",
		PutGrk:   "GREEKS DU PUT",
		Farewell: "Merci d'avoir utilisé le Black-Scholes Pricing Bot !",

		CallPrice: "Call Price",
		PutPrice:  "Put Price",
		Delta:     "Delta",
		Gamma:     "Gamma",
		Vega:      "Vega",
		Theta:     "Theta",
		Rho:       "Rho",
		PerDay:    "(par jour)",

		Status:         "Statut",
		StatusITM:      "ITM (In The Money) pour le Call",
		StatusOTM:      "OTM (Out of The Money) pour le Call",
		StatusATM:      "ATM (At The Money)",
		MoneynessRatio: "Moneyness (S/K)",

		EnterParameters: "Entrez les paramètres de l'option :",
		PromptSpot:      "Cours actuel du sous-jacent (S) : ",
		PromptStrike:    "Strike (K) : ",
		PromptRate:      "Taux sans risque (r, ex: 0.03 pour 3%) : ",
		PromptVol:       "Volatilité (sigma, ex: 0.25 pour 25%) : ",
		PromptMaturity:  "Maturité (T en années, ex: 0.5 pour 6 mois) : ",

		NotANumber:          "Veuillez entrer un nombre valide.",
		SpotPositive:        "Le prix doit être strictement positif",
		StrikePositive:      "Le strike doit être strictement positif",
		VolNonNegative:      "La volatilité ne peut pas être négative",
		MaturityNonNegative: "La maturité ne peut pas être négative",
		InvalidRate:         "Taux invalide",
		Interrupted:         "Programme interrompu par l'utilisateur.",
		Computing:           "Calcul des prix et Greeks en cours...",
		ValidationError:     "Erreur",
		UnexpectedError:     "Erreur inattendue",
		CheckParameters:     "Veuillez vérifier vos paramètres et réessayer.",
		ContactSupport:      "Veuillez contacter le support si le problème persiste.",

		Parameters:     "Paramètres",
		SpotLabel:      "Prix Spot",
		StrikeLabel:    "Prix d'Exercice (Strike)",
		MaturityLabel:  "Temps jusqu'à Maturité (Années)",
		VolLabel:       "Volatilité",
		RateLabel:      "Taux d'Intérêt Sans Risque",
		CallPriceTitle: "Prix du CALL",
		PutPriceTitle:  "Prix du PUT",
		CallPnLTitle:   "PnL CALL",
		PutPnLTitle:    "PnL PUT",
		PurchasePrice:  "Prix d'achat",
	},
	"en": {
		Header:   "BLACK-SCHOLES OPTION PRICING BOT",
		Results:  "RESULTS",
		Prices:   "OPTION PRICES",
		CallGrk:  "CALL GREEKS",
		PutGrk:   "PUT GREEKS",
		Farewell: "Thanks for using the Black-Scholes Pricing Bot!",

		CallPrice: "Call Price",
		PutPrice:  "Put Price",
		Delta:     "Delta",
		Gamma:     "Gamma",
		Vega:      "Vega",
		Theta:     "Theta",
		Rho:       "Rho",
		PerDay:    "(per day)",

		Status:         "Status",
		StatusITM:      "ITM (In The Money) for the Call",
		StatusOTM:      "OTM (Out of The Money) for the Call",
		StatusATM:      "ATM (At The Money)",
		MoneynessRatio: "Moneyness (S/K)",

		EnterParameters: "Enter the option parameters:",
		PromptSpot:      "Underlying spot price (S): ",
		PromptStrike:    "Strike (K): ",
		PromptRate:      "Risk-free rate (r, e.g. 0.03 for 3%): ",
		PromptVol:       "Volatility (sigma, e.g. 0.25 for 25%): ",
		PromptMaturity:  "Maturity (T in years, e.g. 0.5 for 6 months): ",

		NotANumber:          "Please enter a valid number.",
		SpotPositive:        "The price must be strictly positive",
		StrikePositive:      "The strike must be strictly positive",
		VolNonNegative:      "Volatility cannot be negative",
		MaturityNonNegative: "Maturity cannot be negative",
		InvalidRate:         "Invalid rate",
		Interrupted:         "Program interrupted by the user.",
		Computing:           "Computing prices and Greeks...",
		ValidationError:     "Error",
		UnexpectedError:     "Unexpected error",
		CheckParameters:     "Please check your parameters and try again.",
		ContactSupport:      "Please contact support if the problem persists.",

		Parameters:     "Parameters",
		SpotLabel:      "Spot Price",
		StrikeLabel:    "Strike Price",
		MaturityLabel:  "Time to Maturity (Years)",
		VolLabel:       "Volatility",
		RateLabel:      "Risk-Free Interest Rate",
		CallPriceTitle: "CALL Price",
		PutPriceTitle:  "PUT Price",
		CallPnLTitle:   "CALL PnL",
		PutPnLTitle:    "PUT PnL",
		PurchasePrice:  "Purchase price",
	},
}

// Locales lists the supported catalog keys.
func Locales() []string { return []string{"fr", "en"} }

// MessagesFor returns the catalog of locale, falling back to French.
func MessagesFor(locale string) Messages {
	if m, ok := catalogs[locale]; ok {
		return m
	}
	return catalogs["fr"]
}
