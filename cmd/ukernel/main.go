// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command ukernel inspects and exercises the microkernel library on the
// host: it reports detected CPU features, cross-checks every specialized
// tile function against the generic one and round-trips data through pack
// and unpack.
package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/ajroetker/go-ukernel/cmd/ukernel/commands"
)

func main() {
	err := commands.Execute()
	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
