package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rohanthewiz/serr"
)

// BookingReceipt is the service's response to a therapy booking
// request. The invoice ID is what CheckPayment polls against while the
// user confirms the mobile-money prompt on their phone.
type BookingReceipt struct {
	Message string `json:"message"`
	Invoice string `json:"invoice"`
}

// Book initiates a therapy-session booking and payment prompt for the
// given phone number.
func (c *Client) Book(ctx context.Context, phone string) (*BookingReceipt, error) {
	if phone == "" {
		return nil, serr.New("missing phone number")
	}

	resp, err := c.postJSON(ctx, BookPath, map[string]string{"phone": phone})
	if err != nil {
		return nil, serr.Wrap(err, "booking request failed")
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, serr.New(fmt.Sprintf("booking returned status %d", resp.StatusCode))
	}

	var receipt BookingReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, serr.Wrap(err, "failed to decode booking response")
	}
	return &receipt, nil
}

// CheckPayment fetches the current status of a booking payment.
// The payment provider's payload shape varies, so it is returned as a
// generic map for the caller to inspect.
func (c *Client) CheckPayment(ctx context.Context, invoiceID string) (map[string]any, error) {
	if invoiceID == "" {
		return nil, serr.New("missing invoice ID")
	}

	resp, err := c.get(ctx, checkPathPrefix+url.PathEscape(invoiceID))
	if err != nil {
		return nil, serr.Wrap(err, "payment status request failed")
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		errMsg, ferr := errorField(resp.Body)
		if ferr == nil && errMsg != "" {
			return nil, serr.New(errMsg)
		}
		return nil, serr.New(fmt.Sprintf("payment status returned %d", resp.StatusCode))
	}

	var status map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, serr.Wrap(err, "failed to decode payment status")
	}
	return status, nil
}
