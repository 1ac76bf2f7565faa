package service

import "time"

// systemClock — источник времени по умолчанию.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock возвращает часы на основе системного времени в UTC.
func SystemClock() systemClock { return systemClock{} }
