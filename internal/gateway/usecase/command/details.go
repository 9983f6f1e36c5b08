package command

import (
	"strconv"

	"github.com/storekit/multisafepay-gateway/internal/address"
	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
	"github.com/storekit/multisafepay-gateway/internal/msp"
)

// customerDetails maps an address block to the PSP's customer structure. The
// house number is split out of the free-text street line because the PSP
// requires it as a separate field.
func customerDetails(block domain.AddressBlock, email string, cmd ConfirmOrderCommand, userID uint) msp.CustomerDetails {
	parsed := address.ParseWithFallback(block.Address1, block.Address2)

	if email == "" {
		email = block.Email
	}

	details := msp.CustomerDetails{
		Locale:      cmd.Locale,
		IPAddress:   cmd.ClientIP,
		ForwardedIP: cmd.ForwardedIP,
		FirstName:   block.FirstName,
		LastName:    block.LastName,
		CompanyName: block.Company,
		Address1:    parsed.Street,
		HouseNumber: address.HouseNumberDigits(parsed.HouseNumber),
		ZipCode:     block.ZipCode,
		City:        block.City,
		State:       block.State,
		Country:     block.Country,
		Phone:       block.Phone,
		Email:       email,
		Referrer:    cmd.Referrer,
		UserAgent:   cmd.UserAgent,
	}

	if userID > 0 {
		details.Reference = strconv.FormatUint(uint64(userID), 10)
	}

	return details
}

// deliveryDetails builds the delivery block, falling back to the billing
// email when the shipping address carries none
func deliveryDetails(order *domain.Order, cmd ConfirmOrderCommand) msp.CustomerDetails {
	shipping := order.DeliveryAddress()

	email := shipping.Email
	if email == "" {
		email = order.Billing.Email
	}

	return customerDetails(shipping, email, cmd, order.UserID)
}
