package models

// Permission constants
const (
	// Treatment permissions
	PermissionTreatmentRead  = "treatment:read"
	PermissionTreatmentWrite = "treatment:write"

	// Diagnosis permissions
	PermissionDiagnosisRead  = "diagnosis:read"
	PermissionDiagnosisWrite = "diagnosis:write"

	// Assistant permissions
	PermissionAssistantRead  = "assistant:read"
	PermissionAssistantWrite = "assistant:write"

	// Branch permissions
	PermissionBranchRead  = "branch:read"
	PermissionBranchWrite = "branch:write"

	// Clinic permissions
	PermissionClinicRead  = "clinic:read"
	PermissionClinicWrite = "clinic:write"

	// User management permissions
	PermissionUserRead  = "user:read"
	PermissionUserWrite = "user:write"
)

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role Role) []string {
	switch role {
	case RoleSuperAdmin:
		return []string{
			PermissionTreatmentRead,
			PermissionTreatmentWrite,
			PermissionDiagnosisRead,
			PermissionDiagnosisWrite,
			PermissionAssistantRead,
			PermissionAssistantWrite,
			PermissionBranchRead,
			PermissionBranchWrite,
			PermissionClinicRead,
			PermissionClinicWrite,
			PermissionUserRead,
			PermissionUserWrite,
		}
	case RoleClinicAdmin:
		return []string{
			PermissionTreatmentRead,
			PermissionTreatmentWrite,
			PermissionDiagnosisRead,
			PermissionDiagnosisWrite,
			PermissionAssistantRead,
			PermissionAssistantWrite,
			PermissionBranchRead,
			PermissionBranchWrite,
			PermissionClinicRead,
			PermissionUserRead,
			PermissionUserWrite,
		}
	case RoleStaff:
		return []string{
			PermissionTreatmentRead,
			PermissionDiagnosisRead,
			PermissionDiagnosisWrite,
			PermissionAssistantRead,
			PermissionBranchRead,
			PermissionClinicRead,
		}
	default:
		return []string{}
	}
}
