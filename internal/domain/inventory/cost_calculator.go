package inventory

import "github.com/shopspring/decimal"

// WeightedUnitPrice precio unitario promedio ponderado tras una reposición de insumo.
// NuevoPrecio = ((CantActual * PrecioActual) + (CantEntrada * PrecioEntrada)) / (CantActual + CantEntrada)
func WeightedUnitPrice(cantActual, precioActual, cantEntrada, precioEntrada decimal.Decimal) decimal.Decimal {
	sum := cantActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := cantActual.Mul(precioActual).Add(cantEntrada.Mul(precioEntrada))
	return num.Div(sum).Round(2)
}
