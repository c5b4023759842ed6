// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
bio-nucleosome-bins counts nucleosome calls per fixed-size genomic window, for
each of several call files, and prints the counts as a single feature file:

  num_files=<N>	window_size=<W>	status=<S>	cancer=<C>
  <count>
  ...

Counts are grouped by input file, in command-line order.  All files are binned
up to the largest call end found in any of them.

Sample usage:
bio-nucleosome-bins -status healthy -cancer none a.bed b.bed > features.txt
*/
package main
