package rbac

// Default policy. "-own" permissions still require an ownership check in
// the operation itself; the table only gates by role.
var RolePermissions = map[string][]string{
	"student": {
		"course:list",
		"course:enroll",
		"course:view-enrolled",
		"quiz:view",
		"quiz:attempt",
		"assignment:submit",
		"dashboard:student",
	},
	"teacher": {
		"course:create",
		"course:modify-own",
		"course:view-own",
		"quiz:create",
		"quiz:analytics-own",
		"assignment:create",
		"submission:view-own",
		"submission:grade-own",
		"dashboard:teacher",
	},
}
