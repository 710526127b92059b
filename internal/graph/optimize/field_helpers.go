package optimize

import "witness/internal/field"

func zerof() field.Element { return field.Zero }
func onef() field.Element  { return field.One }
