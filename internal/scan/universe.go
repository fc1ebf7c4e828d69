package scan

import "sort"

// Predefined universes resolvable by name. Symbols use provider
// notation (.NS suffix for NSE listings).
var universes = map[string][]string{
	"nifty50": {
		"ADANIENT.NS", "ADANIPORTS.NS", "APOLLOHOSP.NS", "ASIANPAINT.NS",
		"AXISBANK.NS", "BAJAJ-AUTO.NS", "BAJAJFINSV.NS", "BAJFINANCE.NS",
		"BHARTIARTL.NS", "BPCL.NS", "BRITANNIA.NS", "CIPLA.NS",
		"COALINDIA.NS", "DIVISLAB.NS", "DRREDDY.NS", "EICHERMOT.NS",
		"GRASIM.NS", "HCLTECH.NS", "HDFCBANK.NS", "HDFCLIFE.NS",
		"HEROMOTOCO.NS", "HINDALCO.NS", "HINDUNILVR.NS", "ICICIBANK.NS",
		"INDUSINDBK.NS", "INFY.NS", "ITC.NS", "JSWSTEEL.NS",
		"KOTAKBANK.NS", "LT.NS", "LTIM.NS", "M&M.NS",
		"MARUTI.NS", "NESTLEIND.NS", "NTPC.NS", "ONGC.NS",
		"POWERGRID.NS", "RELIANCE.NS", "SBILIFE.NS", "SBIN.NS",
		"SUNPHARMA.NS", "TATACONSUM.NS", "TATAMOTORS.NS", "TATASTEEL.NS",
		"TCS.NS", "TECHM.NS", "TITAN.NS", "ULTRACEMCO.NS",
		"UPL.NS", "WIPRO.NS",
	},
	"niftynext50": {
		"ABB.NS", "ADANIENSOL.NS", "ADANIGREEN.NS", "ADANIPOWER.NS",
		"AMBUJACEM.NS", "BAJAJHLDNG.NS", "BANKBARODA.NS", "BEL.NS",
		"BOSCHLTD.NS", "CANBK.NS", "CHOLAFIN.NS", "COLPAL.NS",
		"DABUR.NS", "DLF.NS", "GAIL.NS", "GODREJCP.NS",
		"HAVELLS.NS", "HAL.NS", "ICICIGI.NS", "ICICIPRULI.NS",
		"INDIGO.NS", "IOC.NS", "IRCTC.NS", "JINDALSTEL.NS",
		"JSWENERGY.NS", "LICI.NS", "LODHA.NS", "MARICO.NS",
		"NAUKRI.NS", "PFC.NS", "PIDILITIND.NS", "PNB.NS",
		"RECLTD.NS", "SHREECEM.NS", "SIEMENS.NS", "SRF.NS",
		"TATAPOWER.NS", "TORNTPHARM.NS", "TRENT.NS", "TVSMOTOR.NS",
		"UNITDSPR.NS", "VBL.NS", "VEDL.NS", "ZOMATO.NS",
		"ZYDUSLIFE.NS",
	},
	"us-megacaps": {
		"AAPL", "AMZN", "AVGO", "BRK-B", "GOOGL", "JPM", "LLY",
		"META", "MSFT", "NVDA", "TSLA", "UNH", "V", "XOM",
	},
}

// Universe resolves a predefined universe by name. "all" is the union
// of the Indian index universes.
func Universe(name string) ([]string, bool) {
	if name == "all" {
		out := append([]string{}, universes["nifty50"]...)
		return append(out, universes["niftynext50"]...), true
	}
	symbols, ok := universes[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(symbols))
	copy(out, symbols)
	return out, true
}

// UniverseNames lists the predefined universe names, sorted.
func UniverseNames() []string {
	names := []string{"all"}
	for name := range universes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
