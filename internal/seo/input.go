package seo

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var (
	ErrEmptyName     = errors.New("project name cannot be empty")
	ErrInvalidDomain = errors.New("project domain must be a host name")
	ErrInvalidStatus = errors.New("unknown project status")
)

type ProjectInput struct {
	Name   string        `json:"name"`
	Domain string        `json:"domain"`
	Status ProjectStatus `json:"status,omitempty"`
}

type ProjectPatch struct {
	Name   *string        `json:"name,omitempty"`
	Domain *string        `json:"domain,omitempty"`
	Status *ProjectStatus `json:"status,omitempty"`
}

func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Domain == nil && p.Status == nil
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// NormalizeDomain accepts a bare host or a URL and returns the lower-case host.
func NormalizeDomain(domain string) (string, error) {
	d := strings.TrimSpace(strings.ToLower(domain))
	if d == "" {
		return "", ErrInvalidDomain
	}
	if strings.Contains(d, "://") {
		u, err := url.Parse(d)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidDomain, err)
		}
		d = u.Host
	}
	d = strings.TrimSuffix(strings.TrimPrefix(d, "www."), "/")
	if d == "" || strings.ContainsAny(d, " /?#") || !strings.Contains(d, ".") {
		return "", fmt.Errorf("%w: got %q", ErrInvalidDomain, domain)
	}
	return d, nil
}

func ValidateStatus(s ProjectStatus) error {
	if !slices.Contains(ValidProjectStatuses, s) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return nil
}

func (in *ProjectInput) ValidateAndNormalize() error {
	if err := ValidateName(in.Name); err != nil {
		return err
	}
	in.Name = strings.TrimSpace(in.Name)

	domain, err := NormalizeDomain(in.Domain)
	if err != nil {
		return err
	}
	in.Domain = domain

	if in.Status == "" {
		in.Status = ProjectActive
	}
	return ValidateStatus(in.Status)
}

func (p *ProjectPatch) ValidateAndNormalize() error {
	if p.Name != nil {
		if err := ValidateName(*p.Name); err != nil {
			return err
		}
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
	if p.Domain != nil {
		domain, err := NormalizeDomain(*p.Domain)
		if err != nil {
			return err
		}
		p.Domain = &domain
	}
	if p.Status != nil {
		return ValidateStatus(*p.Status)
	}
	return nil
}
