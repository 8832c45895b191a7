// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package typeutil

import (
	"strconv"

	"github.com/hashicorp/go-set/v2"

	"github.com/wdamron/elab/types"
)

// GeneralizationError reports a type-variable which was generalized while free in the
// enclosing environment.
type GeneralizationError struct {
	Var    *types.Var
	Scheme *types.Scheme
}

func (e *GeneralizationError) Error() string {
	return "Type-variable " + strconv.Itoa(e.Var.Id()) + " of " + types.SchemeString(e.Scheme) +
		" was generalized while free in the environment"
}

// Generalize t at level. If envVars is non-nil, it must contain the ids of all unbound type-variables
// in the enclosing environment (collected before generalization); each quantified type-variable is
// checked against it.
func (ctx *CommonContext) Generalize(level int, t types.Type, envVars *set.Set[int]) (*types.Scheme, error) {
	s := types.Generalize(level, t)
	if envVars == nil {
		return s, nil
	}
	for _, tv := range s.Bound {
		if envVars.Contains(tv.Id()) {
			return s, &GeneralizationError{Var: tv, Scheme: s}
		}
	}
	return s, nil
}
