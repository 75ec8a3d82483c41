package domain

import "errors"

var (
	ErrDealNotFound  = errors.New("deal not found")
	ErrHotelNotFound = errors.New("hotel not found")
	ErrDuplicateDeal = errors.New("deal with this external id already exists")
)
