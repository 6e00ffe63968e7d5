package registry

// catalog is the full static entity list. Order matters only for
// search ranking ties and group listings; lookups go through the map.
var catalog = []Entry{
	// Policy rates
	{Key: "policy_rate", Name: "CBRT Policy Rate", Group: "rates", TechnicalKey: "policy_rate", Source: SourceMacro, Unit: "%",
		Explain: "The CBRT's one-week repo rate, the benchmark interest rate for Turkey."},
	{Key: "deposit_rate", Name: "Deposit Rate", Group: "rates", TechnicalKey: "deposit", Source: SourceMacro, Unit: "%",
		Explain: "Interest paid on overnight deposits at the central bank; the floor of the rate corridor."},
	{Key: "com_loan", Name: "Commercial Loan Rate", Group: "rates", TechnicalKey: "com_loan", Source: SourceMacro, Unit: "%",
		Explain: "Average interest rate on commercial loans; the real cost of borrowing for business."},
	{Key: "real_rate", Name: "Real Interest Rate", Group: "rates", TechnicalKey: "real_rate", Source: SourceMacro, Unit: "%",
		Explain: "Policy rate minus inflation. Negative means inflation outpaces rates."},
	{Key: "real_carry", Name: "Real Carry", Group: "rates", TechnicalKey: "real_carry", Source: SourceMacro, Unit: "%",
		Explain: "Inflation-adjusted return of borrowing USD to hold TRY deposits."},

	// Bonds and sovereign risk
	{Key: "tr_2y", Name: "TR 2Y Bond Yield", Group: "bonds", TechnicalKey: "tr_2y", Source: SourceMacro, Unit: "%",
		Explain: "Near-term rate expectations and central bank credibility."},
	{Key: "tr_10y", Name: "TR 10Y Bond Yield", Group: "bonds", TechnicalKey: "tr_10y", Source: SourceEquityRisk, Unit: "%",
		Valuation: &ValuationSpec{Model: ModelSovereignSpread, Inputs: []string{"us_10y", "cds"}},
		Explain: "The long-term benchmark: inflation expectations plus sovereign risk."},
	{Key: "us_10y", Name: "US 10Y Bond Yield", Group: "bonds", TechnicalKey: "us_10y", Source: SourceMacro, Unit: "%",
		Explain: "The global risk-free rate; rising US yields pull capital out of EM."},
	{Key: "risk_premium", Name: "Risk Premium (Spread)", Group: "bonds", TechnicalKey: "risk_premium", Source: SourceMacro, Unit: "bps",
		Explain: "TR 10Y minus US 10Y: the extra yield demanded for Turkish debt."},
	{Key: "tr_curve", Name: "Yield Curve (10Y-2Y)", Group: "bonds", TechnicalKey: "tr_curve", Source: SourceMacro, Unit: "bps",
		Explain: "10Y minus 2Y. Inverted means the market expects cuts or recession."},
	{Key: "cds", Name: "Turkey 5Y CDS", Group: "bonds", TechnicalKey: "cds", Source: SourceMacro, Unit: "bps",
		Correlations: []string{"usdtry", "bist100"},
		Explain:      "Cost of insuring Turkish sovereign debt against default."},
	{Key: "erp", Name: "Equity Risk Premium", Group: "bonds", TechnicalKey: "erp", Source: SourceEquityRisk, Unit: "%",
		Explain: "Earnings yield minus the risk-free rate; positive means stocks are cheap vs bonds."},
	{Key: "pe", Name: "BIST 100 P/E Ratio", Group: "bonds", TechnicalKey: "pe", Source: SourceEquityRisk, Unit: "x",
		Explain: "Price-to-earnings of the BIST 100. Turkey historically trades at a deep discount."},

	// Inflation
	{Key: "cpi_yoy", Name: "CPI YoY", Group: "inflation", TechnicalKey: "cpi", Source: SourceMacro, Unit: "%",
		Explain: "Headline consumer inflation, year over year."},
	{Key: "cpi_mom", Name: "CPI MoM", Group: "inflation", TechnicalKey: "cpi_mom", Source: SourceMacro, Unit: "%",
		Explain: "Monthly inflation; annualize for current momentum."},
	{Key: "core_cpi", Name: "Core CPI", Group: "inflation", TechnicalKey: "core_cpi", Source: SourceMacro, Unit: "%",
		Explain: "CPI excluding food and energy: sticky underlying inflation."},
	{Key: "ppi_yoy", Name: "PPI YoY", Group: "inflation", TechnicalKey: "ppi", Source: SourceMacro, Unit: "%",
		Explain: "Producer prices, a leading indicator for CPI pass-through."},
	{Key: "ppi_cpi_gap", Name: "PPI-CPI Gap", Group: "inflation", TechnicalKey: "ppi_cpi_gap", Source: SourceMacro, Unit: "pts",
		Explain: "PPI minus CPI. Positive means producers are absorbing costs."},
	{Key: "food_cpi", Name: "Food CPI", Group: "inflation", TechnicalKey: "food_cpi", Source: SourceMacro, Unit: "%",
		Explain: "Food inflation; a quarter of the Turkish CPI basket."},

	// Real economy
	{Key: "gdp_growth", Name: "GDP Growth", Group: "economy", TechnicalKey: "gdp_growth", Source: SourceMacro, Unit: "%",
		Explain: "Real GDP growth. Positive growth with high inflation reads as overheating."},
	{Key: "unemployment", Name: "Unemployment Rate", Group: "economy", TechnicalKey: "unemployment", Source: SourceMacro, Unit: "%",
		Explain: "Official unemployment; broad unemployment runs far higher."},
	{Key: "current_account", Name: "Current Account", Group: "economy", TechnicalKey: "current_account", Source: SourceMacro, Unit: "M$",
		Explain: "Negative balance means dependence on foreign currency inflows."},
	{Key: "fx_reserves", Name: "FX Reserves (Net)", Group: "economy", TechnicalKey: "fx_reserves", Source: SourceMacro, Unit: "M$",
		Explain: "Central bank net FX reserves; the ammunition for defending TRY."},
	{Key: "m2_supply", Name: "M2 Money Supply", Group: "economy", TechnicalKey: "m2_supply", Source: SourceMacro, Unit: "B TL",
		Explain: "Broad money; rapid growth fuels inflation."},
	{Key: "total_credit", Name: "Total Credit", Group: "economy", TechnicalKey: "total_credit", Source: SourceMacro, Unit: "B TL",
		Explain: "Total bank credit; rapid growth signals overheating risk."},
	{Key: "biz_confidence", Name: "Business Confidence", Group: "economy", TechnicalKey: "biz_confidence", Source: SourceMacro, Unit: "",
		Explain: "Above 100 optimistic, below 100 pessimistic; leads investment."},
	{Key: "consumer_conf", Name: "Consumer Confidence", Group: "economy", TechnicalKey: "consumer_conf", Source: SourceMacro, Unit: "",
		Explain: "Low confidence delays purchases and slows growth."},

	// CBRT panel
	{Key: "cbrt_rate", Name: "CBRT Policy Rate", Group: "cbrt", TechnicalKey: "policy_rate", Source: SourceCBRT, Unit: "%",
		Explain: "The policy rate as tracked in the CBRT context panel."},
	{Key: "cbrt_next", Name: "CBRT Next Meeting", Group: "cbrt", TechnicalKey: "next_meeting", Source: SourceCBRT, Unit: "",
		Explain: "Date of the next Monetary Policy Committee meeting."},

	// Equities
	{Key: "bist100", Name: "BIST 100 Index", Group: "equities", TechnicalKey: "XU100.IS", Source: SourceMarket, Unit: "pts", Chartable: true,
		Valuation:    &ValuationSpec{Model: ModelERPYield, Inputs: []string{"tr_10y", "pe"}},
		Correlations: []string{"usdtry", "cds", "vix"},
		Explain:      "Borsa Istanbul 100, Turkey's main stock index."},
	{Key: "bist30", Name: "BIST 30 Index", Group: "equities", TechnicalKey: "XU030.IS", Source: SourceMarket, Unit: "pts", Chartable: true,
		Explain: "The 30 most liquid Istanbul stocks; concentrated and volatile."},
	{Key: "sp500", Name: "S&P 500", Group: "equities", TechnicalKey: "^GSPC", Source: SourceMarket, Unit: "pts", Chartable: true,
		Correlations: []string{"vix", "nasdaq"},
		Explain:      "The US benchmark; when it drops, EM drops harder."},
	{Key: "dowjones", Name: "Dow Jones", Group: "equities", TechnicalKey: "^DJI", Source: SourceMarket, Unit: "pts", Chartable: true,
		Explain: "Thirty large US companies, price-weighted."},
	{Key: "nasdaq", Name: "NASDAQ Composite", Group: "equities", TechnicalKey: "^IXIC", Source: SourceMarket, Unit: "pts", Chartable: true,
		Explain: "Tech-heavy US index, sensitive to interest rates."},
	{Key: "dax", Name: "DAX (Germany)", Group: "equities", TechnicalKey: "^GDAXI", Source: SourceMarket, Unit: "pts", Chartable: true,
		Explain: "Germany is Turkey's largest trade partner."},
	{Key: "ftse", Name: "FTSE 100 (UK)", Group: "equities", TechnicalKey: "^FTSE", Source: SourceMarket, Unit: "pts", Chartable: true,
		Explain: "The UK benchmark index."},
	{Key: "nikkei", Name: "Nikkei 225 (Japan)", Group: "equities", TechnicalKey: "^N225", Source: SourceMarket, Unit: "pts", Chartable: true,
		Explain: "Japan's main stock index."},
	{Key: "russell", Name: "Russell 2000", Group: "equities", TechnicalKey: "^RUT", Source: SourceMarket, Unit: "pts", Chartable: true,
		Explain: "US small caps; sensitive to domestic conditions."},
	{Key: "vix", Name: "VIX (Fear Index)", Group: "equities", TechnicalKey: "^VIX", Source: SourceMarket, Unit: "", Chartable: true,
		Explain: "Implied S&P volatility; above 20-25 means global risk-off."},

	// FX
	{Key: "usdtry", Name: "USD/TRY", Group: "fx", TechnicalKey: "TRY=X", Source: SourceMarket, Unit: "", Chartable: true,
		Valuation:    &ValuationSpec{Model: ModelPPP, Inputs: []string{"cpi_yoy"}},
		Correlations: []string{"cds", "gram_gold", "eurtry", "dxy"},
		Explain:      "The single most important price in Turkey."},
	{Key: "eurtry", Name: "EUR/TRY", Group: "fx", TechnicalKey: "EURTRY=X", Source: SourceMarket, Unit: "", Chartable: true,
		Explain: "Euro against lira; Europe is the largest trading partner."},
	{Key: "gbptry", Name: "GBP/TRY", Group: "fx", TechnicalKey: "GBPTRY=X", Source: SourceMarket, Unit: "", Chartable: true,
		Explain: "Pound against lira."},
	{Key: "dxy", Name: "Dollar Index (DXY)", Group: "fx", TechnicalKey: "DX-Y.NYB", Source: SourceMarket, Unit: "", Chartable: true,
		Correlations: []string{"usdtry", "gold"},
		Explain:      "Dollar strength vs a basket of six currencies."},

	// Commodities
	{Key: "gold", Name: "Gold (XAU/USD)", Group: "commodities", TechnicalKey: "GC=F", Source: SourceMarket, Unit: "$", Chartable: true,
		Correlations: []string{"gram_gold", "silver", "dxy"},
		Explain:      "The global gold price; the traditional Turkish inflation hedge."},
	{Key: "gram_gold", Name: "Gram Gold (TRY)", Group: "commodities", TechnicalKey: "gram_gold", Source: SourceMarket, Unit: "₺", Chartable: true,
		Explain: "Gold per gram in lira: XAU/USD x USDTRY / 31.1035."},
	{Key: "silver", Name: "Silver", Group: "commodities", TechnicalKey: "SI=F", Source: SourceMarket, Unit: "$", Chartable: true,
		Explain: "More volatile than gold, with an industrial demand leg."},
	{Key: "oil_brent", Name: "Brent Crude Oil", Group: "commodities", TechnicalKey: "BZ=F", Source: SourceMarket, Unit: "$", Chartable: true,
		Correlations: []string{"THYAO.IS", "PGSUS.IS", "TUPRS.IS"},
		Explain:      "Turkey imports nearly all its oil; rising Brent widens the deficit."},
	{Key: "oil_wti", Name: "WTI Crude Oil", Group: "commodities", TechnicalKey: "CL=F", Source: SourceMarket, Unit: "$", Chartable: true,
		Explain: "The US benchmark crude."},
	{Key: "natgas", Name: "Natural Gas", Group: "commodities", TechnicalKey: "NG=F", Source: SourceMarket, Unit: "$", Chartable: true,
		Explain: "Henry Hub gas; Turkey imports most of its gas."},

	// Crypto
	{Key: "btc", Name: "Bitcoin", Group: "crypto", TechnicalKey: "BTC-USD", Source: SourceMarket, Unit: "$", Chartable: true,
		Correlations: []string{"eth"},
		Explain:      "Widely held in Turkey as a hedge against TRY depreciation."},
	{Key: "eth", Name: "Ethereum", Group: "crypto", TechnicalKey: "ETH-USD", Source: SourceMarket, Unit: "$", Chartable: true,
		Explain: "The second largest cryptocurrency."},

	// Composite and correlation panels
	{Key: "scorecard", Name: "Macro Scorecard", Group: "scorecard", TechnicalKey: "composite", Source: SourceScorecard, Unit: "pts",
		Explain: "Weighted composite of the macro signals, -100 to +100."},
	{Key: "gold_corr", Name: "Gold/TRY Correlation", Group: "scorecard", TechnicalKey: "corr_usd", Source: SourceGoldCorr, Unit: "",
		Explain: "Three-month correlation between gram gold and USDTRY."},

	// Banking monitor
	{Key: "loan_growth", Name: "Loan Growth (13w)", Group: "banking", TechnicalKey: "loan_growth", Source: SourceBanking, Unit: "%",
		Explain: "Annualized 13-week loan growth across the banking system."},
	{Key: "npl_ratio", Name: "NPL Ratio", Group: "banking", TechnicalKey: "npl_ratio", Source: SourceBanking, Unit: "%",
		Explain: "Non-performing loans as a share of total credit."},
	{Key: "fx_deposits", Name: "FX Deposit Share", Group: "banking", TechnicalKey: "fx_deposits", Source: SourceBanking, Unit: "%",
		Explain: "Share of deposits held in foreign currency (dollarization)."},

	// Sentiment
	{Key: "panic_score", Name: "Panic Score", Group: "sentiment", TechnicalKey: "panic", Source: SourceSentiment, Unit: "",
		Explain: "Search-interest proxy for household FX panic."},
	{Key: "greed_score", Name: "Greed Score", Group: "sentiment", TechnicalKey: "greed", Source: SourceSentiment, Unit: "",
		Explain: "Search-interest proxy for speculative appetite."},

	// Trade
	{Key: "total_exports", Name: "Total Exports", Group: "trade", TechnicalKey: "total_exports", Source: SourceTrade, Unit: "M$",
		Explain: "Monthly export total as reported by the exporters' assembly."},
}
