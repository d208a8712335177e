package cfn

import (
	"fmt"
	"sync"

	"github.com/klothoplatform/lattice/pkg/construct"
)

var (
	typesMu       sync.RWMutex
	resourceTypes = make(map[string]string)
)

// RegisterResourceType maps a construct resource type (eg "vpclattice_service") to its CloudFormation type
// (eg "AWS::VpcLattice::Service"). It panics on conflicting registrations.
func RegisterResourceType(shortType, cfnType string) {
	typesMu.Lock()
	defer typesMu.Unlock()
	if existing, ok := resourceTypes[shortType]; ok && existing != cfnType {
		panic(fmt.Sprintf("resource type %s already registered as %s", shortType, existing))
	}
	resourceTypes[shortType] = cfnType
}

// ResourceType returns the CloudFormation type of the resource.
func ResourceType(id construct.ResourceId) (string, error) {
	if id.Provider != Provider {
		return "", fmt.Errorf("resource %s: unsupported provider %q", id, id.Provider)
	}
	typesMu.RLock()
	defer typesMu.RUnlock()
	t, ok := resourceTypes[id.Type]
	if !ok {
		return "", fmt.Errorf("resource %s: no CloudFormation type registered for %s", id, id.QualifiedTypeName())
	}
	return t, nil
}
