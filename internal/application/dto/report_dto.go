package dto

import "github.com/shopspring/decimal"

// ReportQuery parámetros comunes de /api/reportes/*. Fechas YYYY-MM-DD, inclusivas.
type ReportQuery struct {
	DateFrom string
	DateTo   string
	Product  string
	SocioID  *int64
}

// ReportPeriod período efectivamente reportado. Widened indica que el rango pedido
// no tenía datos y se usó el histórico completo.
type ReportPeriod struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Widened bool   `json:"widened"`
}

// KPIs indicadores del tablero.
type KPIs struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	IncomeChange       decimal.Decimal `json:"incomeChange"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	ActiveMembers      int             `json:"activeMembers"`
	InventoryValue     decimal.Decimal `json:"inventoryValue"`
	AvailableItems     int             `json:"availableItems"`
	GrossMargin        decimal.Decimal `json:"grossMargin"`
}

// KPIReport respuesta de /api/reportes/kpis.
type KPIReport struct {
	KPIs             KPIs         `json:"kpis"`
	Period           ReportPeriod `json:"period"`
	MarginCostSource string       `json:"marginCostSource"`
}

// FinancialPoint ventas, aportes y gastos de un mes.
type FinancialPoint struct {
	Month   string          `json:"month"`
	Ventas  decimal.Decimal `json:"ventas"`
	Aportes decimal.Decimal `json:"aportes"`
	Gastos  decimal.Decimal `json:"gastos"`
}

// MemberContribution aporte de un socio frente a la cuota asignada.
type MemberContribution struct {
	IDSocio  int64           `json:"id_socio"`
	Nombre   string          `json:"nombre"`
	Aportado decimal.Decimal `json:"aportado"`
	Cuota    decimal.Decimal `json:"cuota"`
}

// InventoryTypeValue valor de inventario por tipo de insumo.
type InventoryTypeValue struct {
	Tipo  string          `json:"tipo"`
	Items int             `json:"items"`
	Valor decimal.Decimal `json:"valor"`
}

// ProductSeries serie mensual de ventas de un producto.
type ProductSeries struct {
	Product string            `json:"product"`
	Values  []decimal.Decimal `json:"values"`
}

// TopProductsSales series de los productos más vendidos; Values alineado con Labels.
type TopProductsSales struct {
	Labels   []string        `json:"labels"`
	Products []ProductSeries `json:"products"`
}

// ProductionPoint cantidad producida en un mes.
type ProductionPoint struct {
	Month    string          `json:"month"`
	Cantidad decimal.Decimal `json:"cantidad"`
}

// MemberPerformanceItem producción y ventas de un socio.
type MemberPerformanceItem struct {
	IDSocio    int64           `json:"id_socio"`
	Nombre     string          `json:"nombre"`
	Produccion decimal.Decimal `json:"produccion"`
	Ventas     decimal.Decimal `json:"ventas"`
}

// Charts respuesta de /api/reportes/charts.
type Charts struct {
	FinancialEvolution  []FinancialPoint        `json:"financialEvolution"`
	MemberContributions []MemberContribution    `json:"memberContributions"`
	InventoryByType     []InventoryTypeValue    `json:"inventoryByType"`
	TopProductsSales    TopProductsSales        `json:"topProductsSales"`
	ProductionTrend     []ProductionPoint       `json:"productionTrend"`
	MemberPerformance   []MemberPerformanceItem `json:"memberPerformance"`
}

// SalesSummary resumen de ventas del período.
type SalesSummary struct {
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total"`
	PorEstado []GroupStat     `json:"por_estado"`
}

// PagosSummary resumen de pagos del período.
type PagosSummary struct {
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	PorTipo []GroupStat     `json:"por_tipo"`
}

// ProduccionSummary resumen de producción del período.
type ProduccionSummary struct {
	Records    int             `json:"records"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	PorCalidad []GroupStat     `json:"por_calidad"`
}

// InsumosSummary resumen del inventario actual.
type InsumosSummary struct {
	Items      int             `json:"items"`
	Disponible int             `json:"disponibles"`
	Agotados   int             `json:"agotados"`
	Vencidos   int             `json:"vencidos"`
	Valor      decimal.Decimal `json:"valor"`
}

// Summary respuesta de /api/reportes/summary.
type Summary struct {
	Period     ReportPeriod      `json:"period"`
	Ventas     SalesSummary      `json:"ventas"`
	Pagos      PagosSummary      `json:"pagos"`
	Produccion ProduccionSummary `json:"produccion"`
	Socios     []GroupStat       `json:"socios"`
	Insumos    InsumosSummary    `json:"insumos"`
}

// ProductReportItem fila del reporte por producto.
type ProductReportItem struct {
	Product      string          `json:"product"`
	Sales        int             `json:"sales"`
	Quantity     decimal.Decimal `json:"quantity"`
	Revenue      decimal.Decimal `json:"revenue"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	SharePercent decimal.Decimal `json:"sharePercent"`
}

// ProductReport respuesta de /api/reportes/products.
type ProductReport struct {
	Period   ReportPeriod        `json:"period"`
	Total    decimal.Decimal     `json:"total"`
	Products []ProductReportItem `json:"products"`
}
