package cfn

// Pseudo parameters, usable with [Ref].
const (
	Partition = "AWS::Partition"
	Region    = "AWS::Region"
	AccountId = "AWS::AccountId"
	StackName = "AWS::StackName"
)

// Ref references a parameter or pseudo parameter by name. Resources are referenced with construct.PropertyRef
// instead, since their logical ids are only known once the template is rendered.
func Ref(name string) map[string]any {
	return map[string]any{"Ref": name}
}

func GetAtt(logicalId, attribute string) map[string]any {
	return map[string]any{"Fn::GetAtt": []any{logicalId, attribute}}
}

// Join concatenates `parts`, which may be strings, intrinsics or resource references.
func Join(separator string, parts ...any) map[string]any {
	return map[string]any{"Fn::Join": []any{separator, parts}}
}

func Sub(format string) map[string]any {
	return map[string]any{"Fn::Sub": format}
}

func ImportValue(exportName any) map[string]any {
	return map[string]any{"Fn::ImportValue": exportName}
}

// Arn builds `arn:<partition>:<service>:<region>:<account>:<resource...>` for the stack's partition, region and
// account.
func Arn(service string, resource ...any) map[string]any {
	parts := []any{"arn:", Ref(Partition), ":" + service + ":", Ref(Region), ":", Ref(AccountId), ":"}
	return Join("", append(parts, resource...)...)
}
