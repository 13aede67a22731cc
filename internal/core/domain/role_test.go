package domain

import "testing"

func TestCapabilityMatrix(t *testing.T) {
	cases := []struct {
		role  Role
		can   []Capability
		cant  []Capability
	}{
		{RoleClient, nil, []Capability{CapCreateDocument, CapViewArchive, CapManageUsers, CapDeleteDocument, CapManagePrivilegedUsers}},
		{RoleCashier, []Capability{CapCreateDocument}, []Capability{CapViewArchive, CapManageUsers, CapDeleteDocument}},
		{RoleHeadCashier, []Capability{CapCreateDocument, CapDeleteDocument}, []Capability{CapViewArchive, CapManageUsers}},
		{RoleAdmin, []Capability{CapCreateDocument, CapViewArchive, CapManageUsers, CapDeleteDocument}, []Capability{CapManagePrivilegedUsers}},
		{RoleCreator, []Capability{CapCreateDocument, CapViewArchive, CapManageUsers, CapDeleteDocument}, []Capability{CapManagePrivilegedUsers}},
		{RoleNikitovsky, []Capability{CapCreateDocument, CapViewArchive, CapManageUsers, CapDeleteDocument}, []Capability{CapManagePrivilegedUsers}},
		{RoleSuperAdmin, []Capability{CapCreateDocument, CapViewArchive, CapManageUsers, CapDeleteDocument, CapManagePrivilegedUsers}, nil},
	}

	for _, tc := range cases {
		for _, c := range tc.can {
			if !tc.role.Can(c) {
				t.Errorf("%s should hold %s", tc.role, c)
			}
		}
		for _, c := range tc.cant {
			if tc.role.Can(c) {
				t.Errorf("%s should not hold %s", tc.role, c)
			}
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles() {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("baron").Valid() {
		t.Errorf("unknown role should be invalid")
	}
	if Role("").Valid() {
		t.Errorf("empty role should be invalid")
	}
}

func TestRolePrivileged(t *testing.T) {
	if !RoleNikitovsky.Privileged() || !RoleSuperAdmin.Privileged() {
		t.Errorf("special roles should be privileged")
	}
	if RoleAdmin.Privileged() || RoleClient.Privileged() {
		t.Errorf("ordinary roles should not be privileged")
	}
}

func TestUnknownRoleHasNoCapabilities(t *testing.T) {
	if Role("baron").Can(CapCreateDocument) {
		t.Errorf("unknown role must hold nothing")
	}
}
