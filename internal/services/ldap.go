package services

import (
	"crypto/tls"
	"fmt"

	"github.com/go-ldap/ldap/v3"

	"github.com/planboard/planboard/internal/config"
)

type LDAPService struct {
	config *config.LDAPConfig
}

func NewLDAPService(cfg *config.LDAPConfig) *LDAPService {
	return &LDAPService{config: cfg}
}

func (s *LDAPService) IsEnabled() bool {
	return s.config.Enabled
}

type LDAPUser struct {
	DN       string
	Email    string
	FullName string
}

// Authenticate verifies the email/password pair against the directory and
// returns the matched entry. The user filter is applied with the escaped
// email, so it must contain exactly one %s placeholder.
func (s *LDAPService) Authenticate(email, password string) (*LDAPUser, error) {
	if !s.config.Enabled {
		return nil, fmt.Errorf("LDAP is not enabled")
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	var conn *ldap.Conn
	var err error

	if s.config.UseSSL {
		conn, err = ldap.DialTLS("tcp", addr, &tls.Config{InsecureSkipVerify: true})
	} else {
		conn, err = ldap.Dial("tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to LDAP server: %w", err)
	}
	defer conn.Close()

	if s.config.BindDN != "" {
		if err := conn.Bind(s.config.BindDN, s.config.BindPassword); err != nil {
			return nil, fmt.Errorf("failed to bind with service account: %w", err)
		}
	}

	searchFilter := fmt.Sprintf(s.config.UserFilter, ldap.EscapeFilter(email))
	searchRequest := ldap.NewSearchRequest(
		s.config.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		searchFilter,
		[]string{"dn", "cn", "mail", "displayName"},
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("LDAP search failed: %w", err)
	}

	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("user not found in LDAP")
	}
	if len(result.Entries) > 1 {
		return nil, fmt.Errorf("multiple users found in LDAP")
	}

	userDN := result.Entries[0].DN

	// Bind as user to verify password
	if err := conn.Bind(userDN, password); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	entry := result.Entries[0]
	user := &LDAPUser{
		DN:       userDN,
		Email:    entry.GetAttributeValue("mail"),
		FullName: entry.GetAttributeValue("displayName"),
	}
	if user.FullName == "" {
		user.FullName = entry.GetAttributeValue("cn")
	}
	if user.Email == "" {
		user.Email = email
	}

	return user, nil
}
