package domain

import "errors"

var (
	ErrInvalidMerchant   = errors.New("invalid_merchant")
	ErrInvalidMappingKey = errors.New("invalid_mapping_key")
	ErrInvalidHSNCode    = errors.New("invalid_hsn_code")
	ErrInvalidGSTRate    = errors.New("invalid_gst_rate")
	ErrMappingNotFound   = errors.New("mapping_not_found")
)
