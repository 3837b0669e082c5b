package commands

import (
	"fueldrop/internal/core/domain/model/order"
)

// orderEventProperties builds the standard analytics property bag shared by
// the order lifecycle events. Prices are reported in dollars, the window as
// unix timestamps.
func orderEventProperties(o *order.Order) map[string]any {
	return map[string]any{
		"order_id":              o.ID().String(),
		"gallons":               o.Gallons(),
		"gas_type":              o.GasType(),
		"latitude":              float64(o.Location().Latitude()),
		"longitude":             float64(o.Location().Longitude()),
		"street":                o.Address().Street,
		"city":                  o.Address().City,
		"state":                 o.Address().State,
		"zip":                   o.Address().Zip,
		"license_plate":         o.LicensePlate(),
		"coupon_code":           o.CouponCode(),
		"referral_gallons_used": o.ReferralGallonsUsed(),
		"gas_price":             float64(o.GasPrice()) / 100,
		"service_fee":           float64(o.ServiceFee()) / 100,
		"total_price":           float64(o.TotalPrice()) / 100,
		"window_start":          o.WindowStart().Unix(),
		"window_end":            o.WindowEnd().Unix(),
		"market":                o.Market(),
	}
}
