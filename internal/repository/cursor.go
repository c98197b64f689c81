package repository

import (
	"encoding/base64"
	"time"
)

const (
	timeFormat = "2006-01-02T15:04:05.999Z07:00" // reduce precision loss from mysql datetime

	DefaultPageNum = 10
	MaxPageNum     = 30
)

// EncodeCursor will encode the last row's timestamp to a page cursor
func EncodeCursor(t time.Time) string {
	timeString := t.Format(timeFormat)
	return base64.StdEncoding.EncodeToString([]byte(timeString))
}

// DecodeCursor will decode a page cursor back to a timestamp
func DecodeCursor(encodedTime string) (time.Time, error) {
	byt, err := base64.StdEncoding.DecodeString(encodedTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(timeFormat, string(byt))
}

// PageVerify clamps num into the allowed page-size range.
func PageVerify(num *int64) {
	if *num <= 0 || *num > MaxPageNum {
		*num = DefaultPageNum
	}
}
