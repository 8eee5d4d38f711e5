package service

import (
	"fmt"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id string, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrApplicationNotFound(id string) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "application")
}

type ErrNoApplications struct {
	error
}

func NewErrNoApplications() *ErrNoApplications {
	return &ErrNoApplications{fmt.Errorf("no applications to export")}
}

type ErrUnsupportedFormat struct {
	error
}

func NewErrUnsupportedFormat(ext string) *ErrUnsupportedFormat {
	return &ErrUnsupportedFormat{fmt.Errorf("unsupported file format: %s", ext)}
}
